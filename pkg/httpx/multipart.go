package httpx

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
)

// File is one file part of a multipart upload
type File struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// MultipartForm is a multipart/form-data body
type MultipartForm struct {
	Fields map[string]string
	Files  []File
}

func (f *MultipartForm) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range f.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	for _, file := range f.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.FieldName+`"; filename="`+file.FileName+`"`)
		h.Set("Content-Type", file.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
