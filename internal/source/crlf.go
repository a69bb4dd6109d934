package source

import "io"

// crPreserver keeps carriage returns that sit inside quoted fields.
//
// encoding/csv folds every "\r\n" line ending to "\n", including the ones
// inside a multi-line quoted cell. Doubling the CR before such a newline
// makes the fold yield the original "\r\n", so cell text comes out byte for
// byte as exported. Line endings between records are passed through.
type crPreserver struct {
	src   io.Reader
	comma byte
	state quoteState
	in    []byte
	out   []byte
	err   error
}

// quoteState tracks where the scanner is relative to CSV quoting.
type quoteState int

const (
	fieldStart     quoteState = iota
	unquoted                  // inside an unquoted field
	quoted                    // inside a quoted field
	quotedCR                  // CR just seen inside a quoted field
	closingQuote              // quote seen inside a quoted field; may close it
	closingQuoteCR            // CR right after a possibly closing quote
)

func newCRPreserver(src io.Reader, comma rune) *crPreserver {
	return &crPreserver{src: src, comma: byte(comma), in: make([]byte, 32*1024)}
}

func (r *crPreserver) Read(p []byte) (int, error) {
	for len(r.out) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		n, err := r.src.Read(r.in)
		r.out = r.translate(r.in[:n], r.out[:0])
		r.err = err
	}
	n := copy(p, r.out)
	r.out = r.out[n:]
	return n, nil
}

// translate appends in to out, doubling CRs that precede a newline inside a
// quoted field. Quote handling mirrors encoding/csv with LazyQuotes.
func (r *crPreserver) translate(in, out []byte) []byte {
	for _, b := range in {
		switch r.state {
		case fieldStart:
			switch b {
			case '"':
				r.state = quoted
			case r.comma, '\n':
			default:
				r.state = unquoted
			}
		case unquoted:
			if b == r.comma || b == '\n' {
				r.state = fieldStart
			}
		case quoted, quotedCR:
			if r.state == quotedCR && b == '\n' {
				out = append(out, '\r')
			}
			switch b {
			case '"':
				r.state = closingQuote
			case '\r':
				r.state = quotedCR
			default:
				r.state = quoted
			}
		case closingQuote:
			switch b {
			case r.comma, '\n':
				r.state = fieldStart
			case '\r':
				r.state = closingQuoteCR
			default:
				// An escaped quote, or a stray one kept literally.
				r.state = quoted
			}
		case closingQuoteCR:
			switch b {
			case '\n':
				r.state = fieldStart
			case '"':
				r.state = closingQuote
			case '\r':
				r.state = quotedCR
			default:
				r.state = quoted
			}
		}
		out = append(out, b)
	}
	return out
}
