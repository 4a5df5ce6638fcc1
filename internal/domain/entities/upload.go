package entities

// Upload is an image file received with a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}
