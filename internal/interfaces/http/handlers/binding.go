package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/interfaces/http/response"
)

const imageField = "image"

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), binding.MIMEMultipartPOSTForm)
}

// bindPayload binds a JSON body, or a multipart form when one is sent.
func bindPayload(c *gin.Context, dst interface{}) bool {
	var err error
	if isMultipart(c) {
		err = c.ShouldBindWith(dst, binding.FormMultipart)
	} else {
		err = c.ShouldBindJSON(dst)
	}
	if err != nil {
		response.BindError(c, err)
		return false
	}
	return true
}

// formList reads a list field from a multipart form. Repeated keys and a
// single newline separated value are both accepted.
func formList(c *gin.Context, key string) *entities.StringList {
	values, ok := c.GetPostFormArray(key)
	if !ok {
		return nil
	}
	list := entities.ParseStringList(values)
	return &list
}

// formImage returns the uploaded image file and, when no file was sent, a
// plain "image" form value (an empty value clears the image).
func formImage(c *gin.Context, maxBytes int64) (*entities.Upload, *string, error) {
	if !isMultipart(c) {
		return nil, nil, nil
	}
	header, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			if v, ok := c.GetPostForm(imageField); ok {
				return nil, &v, nil
			}
			return nil, nil, nil
		}
		return nil, nil, domainerrors.BadRequest(err.Error())
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, domainerrors.BadRequest("could not read uploaded image")
	}
	defer f.Close()

	limit := maxBytes
	if limit <= 0 {
		limit = header.Size
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, nil, domainerrors.BadRequest("could not read uploaded image")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, nil, domainerrors.BadRequest(fmt.Sprintf("image must be at most %d bytes", maxBytes)).
			WithDetails(map[string]string{imageField: "file too large"})
	}
	return &entities.Upload{Filename: header.Filename, Data: data}, nil, nil
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, domainerrors.NotFound("not found"))
		return 0, false
	}
	return id, true
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domainerrors.BadRequest(fmt.Sprintf("%s must be true or false", key))
	}
	return &v, nil
}

// absoluteURL rebuilds the request URL with scheme and host so pagination
// links are usable by clients.
func absoluteURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	if u.Host == "" {
		u.Host = c.Request.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			u.Scheme = "https"
		}
	}
	return &u
}
