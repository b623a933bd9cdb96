package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../../etc/passwd", "passwd"},
		{"my photo (1).png", "myphoto1.png"},
		{"weird$chars!.gif", "weirdchars.gif"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanFilename(tt.input), tt.input)
	}
}

func TestValidateImageFile(t *testing.T) {
	assert.NoError(t, ValidateImageFile("photo.jpg", 1024))
	assert.NoError(t, ValidateImageFile("photo.PNG", 1024))
	assert.NoError(t, ValidateImageFile("anim.webp", 1024))

	assert.Error(t, ValidateImageFile("doc.pdf", 1024))
	assert.Error(t, ValidateImageFile("script.sh", 1024))
	assert.Error(t, ValidateImageFile("noextension", 1024))
	assert.Error(t, ValidateImageFile("photo.jpg", 11*1024*1024))
}
