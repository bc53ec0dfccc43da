package scan

import (
	"testing"

	"github.com/cybertec-postgresql/pgscan/internal/pgenc"
	"github.com/cybertec-postgresql/pgscan/internal/scanconfig"
)

// TestNoBacktrackBoundedPushback is a white-box check of the scanner's
// no-backtrack invariant at token boundaries: across successive Next()
// calls, s.pos never moves back by more than a small, input-independent
// number of bytes. Push-back inside a single Next() call (realfail's E/e
// rescan, dolqfailed's tag rescan, the quotecontinue and UESCAPE
// lookaheads) is settled before Next returns and is not observed here;
// TestNoBacktrackTouchesLinearInPosition covers re-reading inside a call.
func TestNoBacktrackBoundedPushback(t *testing.T) {
	const maxBackwardJump = 8 // largest backward move of pos allowed between two Next() calls

	cases := []string{
		"1e", "1e+", "1e-", "1E999999999999999999",
		"$$", "$foo$", "$foo$ $bar$ $baz$baz$",
		strings30("1e") + strings30("$tag$"),
		"a+-+-+-+-b", "a@!#^&|`?%+-+-", "!!!!!====<>",
		"'unterminated", `E'\u00`, `E'\uD83D`,
		"U&'d\\0061t\\0061'", `U&'\+01F600' UESCAPE '\'`,
		"/* nested /* comment */ still */ x",
	}

	for _, src := range cases {
		sc := New([]byte(src), scanconfig.Default(), pgenc.Default, nil)
		prevPos := 0
		for {
			tok, err := sc.Next()
			if sc.pos < prevPos {
				jump := prevPos - sc.pos
				if jump > maxBackwardJump {
					t.Errorf("scanning %q: Next() moved pos backward by %d bytes (from %d to %d), want <= %d",
						src, jump, prevPos, sc.pos, maxBackwardJump)
				}
			}
			prevPos = sc.pos
			if err != nil || tok.Kind == EOF {
				break
			}
		}
		sc.Finish()
	}
}

// TestNoBacktrackTouchesLinearInPosition scans a large, repetitive input
// and confirms the scanner's total byte-touch count (see Scanner.touches)
// grows linearly with input length rather than quadratically. A
// backtracking scanner that rescans a token's whole prefix from a saved
// checkpoint on every failed lookahead would instead show total touches
// growing much faster than input length as the input is repeated.
func TestNoBacktrackTouchesLinearInPosition(t *testing.T) {
	unit := "select 'a' + 1, $tag$body$tag$ - x.y::int; /* c */ E'\\u0041\\t' \"quoted\"\"id\"; "

	touchesFor := func(reps int) int {
		src := []byte(repeat(unit, reps))
		sc := New(src, scanconfig.Default(), pgenc.Default, nil)
		defer sc.Finish()
		for {
			tok, err := sc.Next()
			if err != nil {
				t.Fatalf("unexpected scan error: %v", err)
			}
			if tok.Kind == EOF {
				break
			}
		}
		return sc.touches
	}

	small := touchesFor(50)
	large := touchesFor(500) // 10x the input

	ratio := float64(large) / float64(small)
	if ratio > 15 {
		t.Errorf("touch count grew %.1fx for a 10x larger input (small=%d, large=%d), suggests re-scanning", ratio, small, large)
	}
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func strings30(s string) string {
	return repeat(s, 30)
}
