package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"dsx/config"
	"dsx/styles"
)

// ExtractRequest is the request payload.
type ExtractRequest struct {
	Docx    string          `json:"docx"`              // base64 encoded document (required)
	Options *RequestOptions `json:"options,omitempty"` // overrides of configured options
}

// RequestOptions mirrors extraction section of the configuration, absent
// values keep configured ones.
type RequestOptions struct {
	Selection string `json:"selection,omitempty"`
	Flatten   *bool  `json:"flatten,omitempty"`
	KeyNaming string `json:"key_naming,omitempty"`
	FontKeys  string `json:"font_keys,omitempty"`
}

// ExtractResponse is the successful response payload.
type ExtractResponse struct {
	Styles []styles.Record `json:"styles"`
	Count  int             `json:"count"`
}

type handler struct {
	opts styles.Options
	log  *zap.Logger
}

func (o *RequestOptions) apply(opts styles.Options) (styles.Options, error) {
	if o == nil {
		return opts, nil
	}
	if len(o.Selection) > 0 {
		opts.Selection = styles.Selection(o.Selection)
	}
	if o.Flatten != nil {
		opts.Flatten = *o.Flatten
	}
	if len(o.KeyNaming) > 0 {
		opts.KeyNaming = styles.KeyNaming(o.KeyNaming)
	}
	if len(o.FontKeys) > 0 {
		opts.FontKeys = styles.FontKeys(o.FontKeys)
	}
	return opts, opts.Validate()
}

func respond(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

func respondError(status int, msg string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return respond(status, string(body))
}

// statusFor maps extraction errors to response codes: problems with the
// document content are reported as unprocessable.
func statusFor(err error) int {
	var (
		missing   *styles.MissingPartError
		corrupt   *styles.CorruptPartError
		malformed *styles.MalformedXMLError
		access    *styles.FileAccessError
	)
	switch {
	case errors.As(err, &missing), errors.As(err, &corrupt), errors.As(err, &malformed):
		return http.StatusUnprocessableEntity
	case errors.As(err, &access):
		// container could not be opened, data sent is not a document
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *handler) handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if err := ctx.Err(); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req ExtractRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		h.log.Warn("Unable to decode request body", zap.Error(err))
		return respondError(http.StatusBadRequest, "Invalid input"), nil
	}
	if req.Docx == "" {
		h.log.Warn("Request has no document")
		return respondError(http.StatusBadRequest, "'docx' key missing"), nil
	}
	data, err := base64.StdEncoding.DecodeString(req.Docx)
	if err != nil {
		h.log.Warn("Unable to decode document", zap.Error(err))
		return respondError(http.StatusBadRequest, "Failed to decode base64 input"), nil
	}
	opts, err := req.Options.apply(h.opts)
	if err != nil {
		h.log.Warn("Bad extraction options", zap.Error(err))
		return respondError(http.StatusBadRequest, fmt.Sprintf("Invalid options: %v", err)), nil
	}

	name := request.RequestContext.RequestID
	if len(name) == 0 {
		name = "request"
	}
	records, err := styles.New(opts, h.log.Named("styles")).ExtractBytes(name, data)
	if err != nil {
		status := statusFor(err)
		h.log.Error("Unable to extract styles", zap.Int("status", status), zap.Error(err))
		return respondError(status, err.Error()), nil
	}

	body, err := json.Marshal(ExtractResponse{Styles: records, Count: len(records)})
	if err != nil {
		h.log.Error("Unable to marshal response", zap.Error(err))
		return respondError(http.StatusInternalServerError, "Failed to create response"), nil
	}
	h.log.Info("Styles extracted", zap.Int("count", len(records)), zap.Int("size", len(data)))
	return respond(http.StatusOK, string(body)), nil
}

func main() {
	cfg, err := config.LoadConfiguration(os.Getenv("DSX_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to prepare configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := cfg.Logging.Prepare(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to prepare logs: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	h := &handler{opts: cfg.Extraction.Options(), log: log}
	lambda.Start(h.handle)
}
