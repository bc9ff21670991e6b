package services

import (
	"fmt"
	"net/url"
	"strings"

	"clientdesk/internal/models"
)

// Mailto builds a mail-client deep link with the recipient, subject and
// body prefilled. Spaces are percent-encoded because mail clients do
// not decode "+".
func Mailto(to, subject, body string) string {
	esc := func(s string) string {
		return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	}
	return "mailto:" + to + "?subject=" + esc(subject) + "&body=" + esc(body)
}

// DocumentMail builds the deep link for sending a document to a client
// contact. Delivery happens entirely in the user's mail client.
func DocumentMail(to string, client models.Client, doc models.Document) string {
	subject := fmt.Sprintf("%s: %s", capitalize(doc.DocumentType), doc.FileName)
	body := fmt.Sprintf(
		"Dear %s,\n\nPlease find the %s \"%s\" here:\n%s\n\nKind regards",
		client.Name, doc.DocumentType, doc.FileName, doc.FileURL,
	)
	return Mailto(to, subject, body)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// QuotationMail builds the deep link summarizing a quotation.
func QuotationMail(to string, client models.Client, q models.Quotation) string {
	subject := fmt.Sprintf("Quotation: %s", q.Title)
	body := fmt.Sprintf(
		"Dear %s,\n\nPlease find our quotation \"%s\" over %.2f EUR.\n\nKind regards",
		client.Name, q.Title, q.Amount,
	)
	return Mailto(to, subject, body)
}
