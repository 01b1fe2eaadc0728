package commands

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrUploadDocumentCommandIsNotConstructed = errors.New(
		"UploadDocumentCommand must be created via NewUploadDocumentCommand constructor",
	)
)

// UploadDocumentCommand attaches a file to an order. The content is read once,
// by the file store.
type UploadDocumentCommand struct { //nolint:recvcheck //using for validation
	principal   access.Principal
	orderID     int64
	fileName    string
	contentType string
	content     io.Reader
	description *string

	guard guard.ConstructorGuard
}

func NewUploadDocumentCommand(
	principal access.Principal,
	orderID int64,
	fileName, contentType string,
	content io.Reader,
	description *string,
) (UploadDocumentCommand, error) {
	if err := principal.Validate(); err != nil {
		return UploadDocumentCommand{}, err
	}
	if orderID <= 0 {
		return UploadDocumentCommand{}, errs.NewValueIsRequiredError("order id")
	}

	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return UploadDocumentCommand{}, errs.NewValueIsRequiredError("file name")
	}
	if content == nil {
		return UploadDocumentCommand{}, errs.NewValueIsRequiredError("file content")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return UploadDocumentCommand{
		principal:   principal,
		orderID:     orderID,
		fileName:    fileName,
		contentType: contentType,
		content:     content,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UploadDocumentCommand) Validate() error {
	return c.guard.Validate(ErrUploadDocumentCommandIsNotConstructed)
}

func (c UploadDocumentCommand) Principal() access.Principal { return c.principal }
func (c UploadDocumentCommand) OrderID() int64              { return c.orderID }
func (c UploadDocumentCommand) FileName() string            { return c.fileName }
func (c UploadDocumentCommand) ContentType() string         { return c.contentType }
func (c UploadDocumentCommand) Content() io.Reader          { return c.content }
func (c UploadDocumentCommand) Description() *string        { return c.description }
