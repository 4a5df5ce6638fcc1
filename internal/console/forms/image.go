package forms

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"sarb.backend/pkg/apiclient"
)

var ErrNotImage = errors.New("selected file is not an image")

// ImageSelection is a picked file held locally until the form is submitted.
type ImageSelection struct {
	Filename    string
	ContentType string
	Data        []byte
	// Preview is a data URL of the image.
	Preview string
}

// SelectImage sniffs data and builds the local preview. Nothing is uploaded.
func SelectImage(filename string, data []byte) (*ImageSelection, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNotImage)
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%s is %s: %w", filename, mime.String(), ErrNotImage)
	}
	return &ImageSelection{
		Filename:    filepath.Base(filename),
		ContentType: mime.String(),
		Data:        data,
		Preview:     "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// LoadImage reads path and selects it.
func LoadImage(path string) (*ImageSelection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return SelectImage(path, data)
}

func (s *ImageSelection) file(field string) apiclient.File {
	return apiclient.File{Field: field, Filename: s.Filename, ContentType: s.ContentType, Data: s.Data}
}
