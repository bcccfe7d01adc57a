package recording

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformed is returned (wrapped) for input that is not a valid sequence
// of Guacamole protocol instructions.
var ErrMalformed = errors.New("malformed instruction")

// maxElementLength bounds the declared length of a single element.
const maxElementLength = 1 << 20

// Instruction is a single decoded protocol instruction.
type Instruction struct {
	Opcode string
	Args   []string
}

// Decoder reads instructions of the form "LEN.VALUE,LEN.VALUE,...;" where LEN
// is the number of Unicode code points in VALUE.
type Decoder struct {
	r      *bufio.Reader
	offset int64
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, 64*1024)}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 {
	return d.offset
}

// Next decodes the next instruction. It returns io.EOF when the input ends
// cleanly between instructions.
func (d *Decoder) Next() (Instruction, error) {
	if err := d.skipSpace(); err != nil {
		return Instruction{}, err
	}

	var elems []string
	for {
		n, err := d.readLength()
		if err != nil {
			return Instruction{}, err
		}
		value, err := d.readValue(n)
		if err != nil {
			return Instruction{}, err
		}
		elems = append(elems, value)

		sep, err := d.readByte()
		if err != nil {
			return Instruction{}, d.malformed("missing terminator", err)
		}
		switch sep {
		case ',':
		case ';':
			return Instruction{Opcode: elems[0], Args: elems[1:]}, nil
		default:
			return Instruction{}, d.malformed(fmt.Sprintf("unexpected %q after element", sep), nil)
		}
	}
}

func (d *Decoder) skipSpace() error {
	for {
		r, size, err := d.r.ReadRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			return d.r.UnreadRune()
		}
		d.offset += int64(size)
	}
}

func (d *Decoder) readLength() (int, error) {
	var digits []byte
	for {
		c, err := d.readByte()
		if err != nil {
			return 0, d.malformed("truncated length", err)
		}
		if c == '.' {
			break
		}
		if c < '0' || c > '9' {
			return 0, d.malformed(fmt.Sprintf("unexpected %q in length", c), nil)
		}
		digits = append(digits, c)
		if len(digits) > 7 {
			return 0, d.malformed("length too long", nil)
		}
	}
	if len(digits) == 0 {
		return 0, d.malformed("empty length", nil)
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, d.malformed("invalid length", err)
	}
	if n > maxElementLength {
		return 0, d.malformed(fmt.Sprintf("element length %d exceeds %d", n, maxElementLength), nil)
	}
	return n, nil
}

func (d *Decoder) readValue(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		r, size, err := d.r.ReadRune()
		if err != nil {
			return "", d.malformed("truncated value", err)
		}
		d.offset += int64(size)
		b.WriteRune(r)
	}
	return b.String(), nil
}

func (d *Decoder) readByte() (byte, error) {
	c, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	d.offset++
	return c, nil
}

func (d *Decoder) malformed(msg string, cause error) error {
	if errors.Is(cause, io.EOF) {
		cause = io.ErrUnexpectedEOF
	}
	if cause != nil {
		return fmt.Errorf("%w at offset %d: %s: %w", ErrMalformed, d.offset, msg, cause)
	}
	return fmt.Errorf("%w at offset %d: %s", ErrMalformed, d.offset, msg)
}
