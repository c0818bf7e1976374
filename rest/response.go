package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
)

// ResponseFormatter defines an interface responsible for formatting a the
// different types of response objects.
type ResponseFormatter interface {
	// FormatItem formats a single item in a format ready to be serialized by the ResponseSender
	FormatItem(ctx context.Context, headers http.Header, i *resource.Item, skipBody bool) (context.Context, interface{})
	// FormatList formats a list of items in a format ready to be serialized by the ResponseSender
	FormatList(ctx context.Context, headers http.Header, l *resource.ItemList, skipBody bool) (context.Context, interface{})
	// FormatError formats a REST formated error or a simple error in a format ready to be serialized by the ResponseSender
	FormatError(ctx context.Context, headers http.Header, err error, skipBody bool) (context.Context, interface{})
}

// ResponseSender defines an interface responsible for serializing and sending
// the response to the http.ResponseWriter.
type ResponseSender interface {
	// Send serialize the body, sets the given headers and write everything to
	// the provided response writer.
	Send(ctx context.Context, w http.ResponseWriter, status int, headers http.Header, body interface{})
}

// DefaultResponseFormatter provides a base response formatter to be used by
// default. This formatter can easily be extended or replaced by implementing
// ResponseFormatter interface and setting it on Handler.ResponseFormatter.
type DefaultResponseFormatter struct {
}

// DefaultResponseSender provides a base response sender to be used by default.
// This sender can easily be extended or replaced by implementing ResponseSender
// interface and setting it on Handler.ResponseSender.
type DefaultResponseSender struct {
}

// Send sends headers with the given status and marshal the data in JSON.
func (s DefaultResponseSender) Send(ctx context.Context, w http.ResponseWriter, status int, headers http.Header, body interface{}) {
	headers.Set("Content-Type", "application/json")
	// Apply headers to the response
	for key, values := range headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	if body == nil {
		w.WriteHeader(status)
		return
	}
	j, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logErrorf(ctx, "Can't build response: %v", err)
		msg := fmt.Sprintf("Can't build response: %q", err.Error())
		w.Write([]byte(fmt.Sprintf("{\"code\": 500, \"message\": %q}", msg)))
		return
	}
	w.WriteHeader(status)
	if _, err = w.Write(j); err != nil {
		logErrorf(ctx, "Can't send response: %v", err)
	}
}

// FormatItem implements ResponseFormatter.
func (f DefaultResponseFormatter) FormatItem(ctx context.Context, headers http.Header, i *resource.Item, skipBody bool) (context.Context, interface{}) {
	if skipBody || i.Payload == nil {
		return ctx, nil
	}
	return ctx, i.Payload
}

// FormatList implements ResponseFormatter. The body is the page object:
// items, total, count, per_page, current_page and total_pages.
func (f DefaultResponseFormatter) FormatList(ctx context.Context, headers http.Header, l *resource.ItemList, skipBody bool) (context.Context, interface{}) {
	headers.Set("X-Total", strconv.Itoa(l.Total))
	if skipBody {
		return ctx, nil
	}
	items := make([]map[string]interface{}, len(l.Items))
	for i, item := range l.Items {
		items[i] = item.Payload
	}
	return ctx, map[string]interface{}{
		"items":        items,
		"total":        l.Total,
		"count":        l.Count(),
		"per_page":     l.Page.Size,
		"current_page": l.Page.Number,
		"total_pages":  l.TotalPages(),
	}
}

// FormatError implements ResponseFormatter.
func (f DefaultResponseFormatter) FormatError(ctx context.Context, headers http.Header, err error, skipBody bool) (context.Context, interface{}) {
	code := 500
	message := "Server Error"
	if err != nil {
		message = err.Error()
		if e, ok := err.(*Error); ok {
			code = e.Code
		}
	}
	if code >= 500 {
		logErrorf(ctx, "Server error: %v", err)
	}
	if !skipBody {
		payload := map[string]interface{}{
			"code":    code,
			"message": message,
		}
		if e, ok := err.(*Error); ok {
			if e.Issues != nil {
				payload["issues"] = e.Issues
			}
		}
		return ctx, payload
	}
	return ctx, nil
}

// formatResponse routes the type of response on the right ResponseFormatter
// method for internally supported types.
func formatResponse(ctx context.Context, f ResponseFormatter, status int, headers http.Header, resp interface{}, skipBody bool) (context.Context, int, interface{}) {
	var body interface{}
	switch resp := resp.(type) {
	case *resource.Item:
		ctx, body = f.FormatItem(ctx, headers, resp, skipBody)
	case *resource.ItemList:
		ctx, body = f.FormatList(ctx, headers, resp, skipBody)
	case *Error:
		if status == 0 {
			status = resp.Code
		}
		ctx, body = f.FormatError(ctx, headers, resp, skipBody)
	case error:
		if status == 0 {
			status = 500
		}
		ctx, body = f.FormatError(ctx, headers, resp, skipBody)
	default:
		// Let the response sender handle all other types of responses.
		body = resp
	}
	return ctx, status, body
}
