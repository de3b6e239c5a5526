package main

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rfontes/anuncio"
)

var (
	siteHostRe = regexp.MustCompile(`^([a-z0-9-]+\.)?olx\.com\.br$`)
	adPathRe   = regexp.MustCompile(`-\d{8,}$`)
)

// validateSiteURL checks that the URL is an absolute HTTP(S) URL on the
// site's domain, including state subdomains.
func validateSiteURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return anuncio.Errorf(anuncio.EINVALID, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return anuncio.Errorf(anuncio.EINVALID, "URL must use http or https: %q", rawURL)
	}
	if !siteHostRe.MatchString(strings.ToLower(u.Host)) {
		return anuncio.Errorf(anuncio.EINVALID, "URL must be on olx.com.br: %q", rawURL)
	}
	return nil
}

// validateListingURL additionally requires the numeric ad-id suffix that
// every listing URL carries.
func validateListingURL(rawURL string) error {
	if err := validateSiteURL(rawURL); err != nil {
		return err
	}
	u, _ := url.Parse(rawURL)
	if !adPathRe.MatchString(u.Path) {
		return anuncio.Errorf(anuncio.EINVALID, "not a listing URL (no ad id): %q", rawURL)
	}
	return nil
}
