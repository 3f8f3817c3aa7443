package main

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/toon-format/toon-go"
	"go.uber.org/zap"
)

type direction uint8

const (
	toToon direction = iota
	toJSON
)

func (d direction) String() string {
	if d == toToon {
		return "encode"
	}
	return "decode"
}

// A processor converts one input file, or stdin, and writes the result to
// one output file, or stdout.
type processor struct {
	dir  direction
	inf  string
	outf string

	indent  int
	inline  bool
	compact bool

	log *zap.Logger
}

func (p *processor) run(stdin io.Reader, stdout io.Writer) (err error) {
	data, err := p.read(stdin)
	if err != nil {
		return err
	}
	p.log.Debug("read input",
		zap.String("input", p.location()),
		zap.Int("bytes", len(data)),
		zap.Stringer("direction", p.dir))

	out, err := p.convert(data)
	if err != nil {
		p.logFailure(err)
		return errors.WithMessage(err, p.location())
	}

	w, err := openOutput(p.outf, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); err == nil && closeErr != nil {
			err = errors.Wrap(closeErr, "unable to close output")
		}
	}()

	if _, err = w.Write(out); err != nil {
		return errors.Wrap(err, "unable to write output")
	}
	p.log.Debug("wrote output", zap.Int("bytes", len(out)))
	return nil
}

func (p *processor) read(stdin io.Reader) ([]byte, error) {
	if p.inf == "" || p.inf == "-" {
		data, err := ioutil.ReadAll(stdin)
		return data, errors.Wrap(err, "unable to read stdin")
	}

	data, err := ioutil.ReadFile(p.inf)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read input")
	}
	return data, nil
}

// convert turns JSON into toon text or toon text into JSON. The result ends
// with a newline.
func (p *processor) convert(data []byte) ([]byte, error) {
	if p.dir == toToon {
		v, err := toon.FromJSON(data)
		if err != nil {
			return nil, err
		}

		var opts toon.EncoderOpts
		if p.inline {
			opts |= toon.EncoderInlinePrimitives
		}
		buf := bytes.Buffer{}
		if err := toon.NewEncoderOpts(&buf, p.indent, opts).Encode(v); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}

	v, err := toon.DecodeBytes(data)
	if err != nil {
		return nil, err
	}

	var out []byte
	if p.compact {
		out, err = toon.ToJSON(v)
	} else {
		out, err = toon.ToJSONIndent(v, "", strings.Repeat(" ", p.indent))
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func (p *processor) logFailure(err error) {
	if de, ok := errors.Cause(err).(*toon.DecodeError); ok {
		p.log.Debug("decode failed",
			zap.String("input", p.location()),
			zap.Stringer("kind", de.Kind),
			zap.Int("line", de.Line),
			zap.Int("column", de.Column))
		return
	}
	p.log.Debug("conversion failed", zap.String("input", p.location()), zap.Error(err))
}

func (p *processor) location() string {
	if p.inf == "" || p.inf == "-" {
		return "stdin"
	}
	return p.inf
}

type uncloseable struct {
	w io.Writer
}

func (u uncloseable) Write(bs []byte) (int, error) {
	return u.w.Write(bs)
}

func (u uncloseable) Close() error {
	return nil
}

// openOutput opens the named file, or returns stdout when no file is named.
func openOutput(outf string, stdout io.Writer) (io.WriteCloser, error) {
	if outf == "" || outf == "-" {
		return uncloseable{stdout}, nil
	}
	f, err := os.OpenFile(outf, os.O_RDWR|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open output")
	}
	return f, nil
}
