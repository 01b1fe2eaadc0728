package http

import (
	"mime"
	"net/http"
	"strconv"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListComments handles GET /api/v1/orders/:id/comments.
func (s *Server) ListComments(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewListOrderCommentsQuery(principal, orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	comments, err := s.h.ListComments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, newCommentViews(comments))
}

// AddComment handles POST /api/v1/orders/:id/comments.
func (s *Server) AddComment(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	var req addCommentRequest
	if err = s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAddCommentCommand(principal, orderID, req.Comment, req.IsInternal)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	comment, err := s.h.AddComment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, newCommentResponse(comment))
}

// UpdateComment handles PUT /api/v1/orders/:id/comments/:commentId.
func (s *Server) UpdateComment(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}
	commentID, ok := pathID(ctx, "commentId")
	if !ok {
		return badRequest(ctx, "Invalid comment id")
	}

	var req updateCommentRequest
	if err = s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateCommentCommand(principal, orderID, commentID, req.Comment, req.IsInternal)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	comment, err := s.h.UpdateComment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, newCommentResponse(comment))
}

// DeleteComment handles DELETE /api/v1/orders/:id/comments/:commentId.
func (s *Server) DeleteComment(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}
	commentID, ok := pathID(ctx, "commentId")
	if !ok {
		return badRequest(ctx, "Invalid comment id")
	}

	cmd, err := commands.NewDeleteCommentCommand(principal, orderID, commentID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	if err = s.h.DeleteComment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListDocuments handles GET /api/v1/orders/:id/documents.
func (s *Server) ListDocuments(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewListOrderDocumentsQuery(principal, orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	documents, err := s.h.ListDocuments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, newDocumentViews(documents))
}

// UploadDocument handles POST /api/v1/orders/:id/documents as a multipart
// form with a "file" part and an optional "description" field.
func (s *Server) UploadDocument(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return badRequest(ctx, "Missing file")
	}
	file, err := header.Open()
	if err != nil {
		return badRequest(ctx, "Unreadable file")
	}
	defer file.Close()

	var description *string
	if value := ctx.FormValue("description"); value != "" {
		description = &value
	}

	cmd, err := commands.NewUploadDocumentCommand(
		principal,
		orderID,
		header.Filename,
		header.Header.Get(echo.HeaderContentType),
		file,
		description,
	)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	document, err := s.h.UploadDocument.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, newDocumentResponse(document))
}

// DownloadDocument handles GET /api/v1/orders/:id/documents/:docId/content.
func (s *Server) DownloadDocument(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}
	documentID, ok := pathID(ctx, "docId")
	if !ok {
		return badRequest(ctx, "Invalid document id")
	}

	query, err := queries.NewGetDocumentContentQuery(principal, orderID, documentID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	doc, err := s.h.DocumentContent.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	defer doc.Content.Close()

	contentType := doc.MimeType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	header := ctx.Response().Header()
	header.Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	header.Set(echo.HeaderContentLength, strconv.FormatInt(doc.Size, 10))
	return ctx.Stream(http.StatusOK, contentType, doc.Content)
}

// UpdateDocument handles PUT /api/v1/orders/:id/documents/:docId.
func (s *Server) UpdateDocument(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}
	documentID, ok := pathID(ctx, "docId")
	if !ok {
		return badRequest(ctx, "Invalid document id")
	}

	var req updateDocumentRequest
	if err = s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateDocumentCommand(principal, orderID, documentID, req.Description)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	document, err := s.h.UpdateDocument.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, newDocumentResponse(document))
}

// DeleteDocument handles DELETE /api/v1/orders/:id/documents/:docId.
func (s *Server) DeleteDocument(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}
	documentID, ok := pathID(ctx, "docId")
	if !ok {
		return badRequest(ctx, "Invalid document id")
	}

	cmd, err := commands.NewDeleteDocumentCommand(principal, orderID, documentID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	if err = s.h.DeleteDocument.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
