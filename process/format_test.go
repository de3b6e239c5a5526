package process_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfontes/anuncio/process"
)

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("stable for identical content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, process.ComputeHash("<html>a</html>"), process.ComputeHash("<html>a</html>"))
	})

	t.Run("differs for different content", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, process.ComputeHash("<html>a</html>"), process.ComputeHash("<html>b</html>"))
	})

	t.Run("non-empty for empty input", func(t *testing.T) {
		t.Parallel()
		assert.NotEmpty(t, process.ComputeHash(""))
	})
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"short url unchanged", "https://sp.olx.com.br", 40, "https://sp.olx.com.br"},
		{"long url keeps the end", "https://sp.olx.com.br/autos-e-pecas/carros/gol-1457220451", 20, "...os/gol-1457220451"},
		{"zero max", "https://sp.olx.com.br", 0, ""},
		{"tiny max", "https://sp.olx.com.br", 3, "htt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, process.TruncateURL(tt.url, tt.maxLen))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, process.FormatBytes(tt.bytes))
		})
	}
}

func TestFormatRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "100%", process.FormatRatio(1))
	assert.Equal(t, "75%", process.FormatRatio(0.75))
	assert.Equal(t, "0%", process.FormatRatio(0))
}
