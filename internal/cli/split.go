package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/cybertec-postgresql/pgscan/internal/errors"
	"github.com/cybertec-postgresql/pgscan/internal/split"
)

// splitStatement is the wire shape the split command emits, one line of
// JSON per statement, matching report's JSONFormatter convention of a
// small mirror struct kept separate from the internal type.
type splitStatement struct {
	Text      string `json:"text"`
	StartPos  int    `json:"start_pos"`
	EndPos    int    `json:"end_pos"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Split implements the split command: divide path's contents into
// top-level statements and print one JSON object per statement to out.
func Split(ctx context.Context, c *Config, path string, out io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	enc, closeEnc, err := resolveEncoding(ctx, c)
	if err != nil {
		return err
	}
	defer closeEnc()

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.NewParseError(path, 0, 0, err.Error())
	}

	stmts, err := split.Split(src, Flags(c), enc)
	if err != nil {
		return err
	}

	jenc := json.NewEncoder(out)
	for _, stmt := range stmts {
		if err := jenc.Encode(splitStatement{
			Text:      stmt.Text,
			StartPos:  stmt.StartPos,
			EndPos:    stmt.EndPos,
			StartLine: stmt.StartLine,
			EndLine:   stmt.EndLine,
		}); err != nil {
			return err
		}
	}
	return nil
}
