package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/a64doc"
	main "github.com/fwojciec/a64doc/cmd/a64doc"
	"github.com/fwojciec/a64doc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodingLoader streams the given (set, file, mnemonic) encodings.
func encodingLoader(encs ...[3]string) *mock.Loader {
	return &mock.Loader{
		WalkSetsFn: func(_ context.Context, _ a64doc.Level, fn a64doc.VisitFunc, _ ...a64doc.SetID) error {
			for _, e := range encs {
				set := a64doc.NewInstructionSet(a64doc.SetID(e[0]))
				sec := &a64doc.InstructionSection{File: e[1], Heading: e[2], Set: set}
				c := &a64doc.InstructionClass{Section: sec}
				if err := fn(&a64doc.InstructionEncoding{Mnemonic: e[2], Class: c}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func TestJSCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes sorted catalog to the catalog writer", func(t *testing.T) {
		t.Parallel()

		var written []*a64doc.Record
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Loader: encodingLoader(
				[3]string{"sve", "sub_z.xml", "SUB"},
				[3]string{"base", "sub_imm.xml", "SUB"},
				[3]string{"base", "add_imm.xml", "ADD"},
			),
			Catalog: &mock.CatalogWriter{
				WriteCatalogFn: func(_ context.Context, records []*a64doc.Record) error {
					written = records
					return nil
				},
			},
		}

		err := (&main.JSCmd{Out: "instrs.js"}).Run(deps)

		require.NoError(t, err)
		require.Len(t, written, 3)
		assert.Equal(t, "ADD", written[0].Mnemonic)
		assert.Equal(t, a64doc.SetBase, written[1].Category)
		assert.Equal(t, a64doc.SetSVE, written[2].Category)
	})

	t.Run("prints script when no writer configured", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Loader: encodingLoader([3]string{"base", "add_imm.xml", "ADD"}),
		}

		err := (&main.JSCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			`const instrs = [{"category":"base","mnemonic":"ADD","heading":"ADD","brief":"","file":"add_imm.html"}];`+"\n",
			stdout.String())
	})

	t.Run("writes nothing when the catalog fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Loader: &mock.Loader{
				WalkSetsFn: func(context.Context, a64doc.Level, a64doc.VisitFunc, ...a64doc.SetID) error {
					return a64doc.Errorf(a64doc.ENOTFOUND, "document %q not found", "index.xml")
				},
			},
		}

		err := (&main.JSCmd{}).Run(deps)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), `document "index.xml" not found`)
	})

	t.Run("reports writer errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Loader: encodingLoader([3]string{"base", "add_imm.xml", "ADD"}),
			Catalog: &mock.CatalogWriter{
				WriteCatalogFn: func(context.Context, []*a64doc.Record) error {
					return errors.New("read-only file system")
				},
			},
		}

		err := (&main.JSCmd{Out: "instrs.js"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
