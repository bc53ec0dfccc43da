package report

import (
	"encoding/json"
	"io"

	"github.com/cybertec-postgresql/pgscan/internal/scan"
)

// jsonToken is the wire shape of one scan.Token: a small mirror struct kept
// separate from the domain type so json tags don't leak into scan.Token
// itself.
type jsonToken struct {
	Kind    string `json:"kind"`
	Pos     int    `json:"pos"`
	Text    string `json:"text,omitempty"`
	Int     int32  `json:"int,omitempty"`
	Keyword string `json:"keyword,omitempty"`
}

type jsonWarning struct {
	Pos     int    `json:"pos"`
	Message string `json:"message"`
}

type jsonError struct {
	Pos     int    `json:"pos"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

type jsonResult struct {
	File     string        `json:"file"`
	Tokens   []jsonToken   `json:"tokens"`
	Warnings []jsonWarning `json:"warnings,omitempty"`
	Error    *jsonError    `json:"error,omitempty"`
}

// JSONFormatter renders a Result as an indented JSON object via
// encoding/json.MarshalIndent.
type JSONFormatter struct{}

// Name implements Formatter.
func (JSONFormatter) Name() string { return string(FormatJSON) }

// Format implements Formatter.
func (JSONFormatter) Format(w io.Writer, res *Result) error {
	out := jsonResult{File: res.File}
	for _, tok := range res.Tokens {
		out.Tokens = append(out.Tokens, toJSONToken(tok))
	}
	for _, warn := range res.Warnings {
		out.Warnings = append(out.Warnings, jsonWarning{Pos: warn.Pos, Message: warn.String()})
	}
	if res.Err != nil {
		out.Error = &jsonError{Pos: res.Err.Pos, Message: res.Err.Error(), Hint: res.Err.Hint}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func toJSONToken(tok scan.Token) jsonToken {
	jt := jsonToken{Kind: kindName(tok.Kind), Pos: tok.Pos, Text: tok.Text}
	if tok.Kind == scan.ICONST || tok.Kind == scan.PARAM {
		jt.Int = tok.Int
	}
	if tok.Kind == scan.Keyword && tok.Keyword != nil {
		jt.Keyword = tok.Keyword.Name
	}
	return jt
}
