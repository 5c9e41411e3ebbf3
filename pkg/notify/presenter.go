package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ce1sus/ce1sus-console/pkg/restclient"
)

const (
	MessageInternalError = "Internal error occurred, please contact your system administrator"
	MessageServerOffline = "Server is probably offline"
	MessageUnknownError  = "Error occurred"
)

// ErrorPresenter turns a failed action into the message shown to the user.
type ErrorPresenter interface {
	Present(err error) Message
}

type defaultPresenter struct{}

func NewErrorPresenter() ErrorPresenter {
	return defaultPresenter{}
}

func (defaultPresenter) Present(err error) Message {
	var statusErr *restclient.StatusError
	if !errors.As(err, &statusErr) {
		text := MessageUnknownError
		if err != nil {
			text = err.Error()
		}
		return Message{Type: Danger, Message: text}
	}

	var text string
	switch statusErr.Status {
	case http.StatusInternalServerError:
		text = MessageInternalError
	case 0:
		text = MessageServerOffline
	default:
		text = extractText(statusErr.Body)
	}
	if text == "" {
		text = MessageUnknownError
	}
	return Message{Type: Danger, Message: fmt.Sprintf("%d - %s", statusErr.Status, text)}
}

// extractText pulls a readable message out of an error body: the "message"
// field of a JSON envelope, the text of an HTML error page, or the body as is.
func extractText(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	switch trimmed[0] {
	case '{':
		var envelope struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal([]byte(trimmed), &envelope); err == nil {
			if envelope.Message != "" {
				return envelope.Message
			}
			return envelope.Description
		}
	case '<':
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
		if err == nil {
			doc.Find("script, style").Remove()
			sel := doc.Find("body")
			if sel.Length() == 0 {
				sel = doc.Selection
			}
			return strings.Join(strings.Fields(sel.Text()), " ")
		}
	}
	return trimmed
}
