package etree_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/fwojciec/a64doc"
	"github.com/fwojciec/a64doc/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

// The end-to-end fixture: one index referencing one section with two
// classes, the second of whose encodings has no mnemonic.
var addFS = fstest.MapFS{
	"index.xml": file(`<allinstrs id="index">
  <sect id="addsub">
    <iforms>
      <iform id="ADD_addsub_imm" iformfile="add_addsub_imm.xml">ADD (immediate)</iform>
    </iforms>
  </sect>
</allinstrs>`),
	"add_addsub_imm.xml": file(`<instructionsection id="ADD_addsub_imm" title="ADD (immediate)">
  <heading>ADD (immediate)</heading>
  <desc><brief><para>Add (immediate)</para></brief></desc>
  <classes>
    <iclass name="32-bit" id="sf0">
      <encoding name="ADD_32_addsub_imm">
        <docvars><docvar key="mnemonic" value="ADD"/></docvars>
        <asmtemplate><text>ADD  </text><a>&lt;Wd&gt;</a></asmtemplate>
      </encoding>
    </iclass>
    <iclass name="64-bit" id="sf1">
      <encoding name="ADD_64_addsub_imm">
        <asmtemplate><text>ADD  </text><a>&lt;Xd&gt;</a></asmtemplate>
      </encoding>
    </iclass>
  </classes>
</instructionsection>`),
}

// orderFS lists the SUB class before the ADD class and spreads a second
// section across the index.
var orderFS = fstest.MapFS{
	"fpsimdindex.xml": file(`<allinstrs>
  <iforms>
    <iform iformfile="arith.xml"/>
    <iform/>
  </iforms>
  <iforms>
    <iform iformfile="fmov.xml"/>
  </iforms>
</allinstrs>`),
	"arith.xml": file(`<instructionsection id="arith">
  <docvars><docvar key="instr-class" value="fpsimd"/></docvars>
  <heading>Arithmetic</heading>
  <desc><brief>Scalar arithmetic</brief></desc>
  <classes>
    <iclass id="sub">
      <docvars><docvar key="instr-class" value="fpsimd"/></docvars>
      <encoding name="SUB_s">
        <docvars><docvar key="mnemonic" value="SUB"/></docvars>
      </encoding>
      <encoding name="SUB_d">
        <docvars><docvar key="mnemonic" value="SUB"/></docvars>
      </encoding>
    </iclass>
    <iclass id="add">
      <docvars><docvar key="instr-class" value="fpsimd"/></docvars>
      <encoding name="ADD_s">
        <docvars>
          <docvar key="mnemonic" value="ADD"/>
          <docvar key="instr-class" value="advsimd"/>
        </docvars>
      </encoding>
    </iclass>
  </classes>
</instructionsection>`),
	"fmov.xml": file(`<instructionsection id="fmov">
  <heading>FMOV</heading>
  <classes>
    <iclass id="fmov">
      <arch_variants><arch_variant name="ARMv8.2" feature="FEAT_FP16"/></arch_variants>
      <encoding name="FMOV_h">
        <docvars><docvar key="mnemonic" value="FMOV"/><docvar key="alias_mnemonic" value="FMOVH"/></docvars>
      </encoding>
    </iclass>
  </classes>
</instructionsection>`),
}

func TestLoader_WalkSet(t *testing.T) {
	t.Parallel()

	t.Run("visits only encodings with a mnemonic", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(addFS)

		var visited []*a64doc.InstructionEncoding
		err := loader.WalkSet(context.Background(), a64doc.SetBase, a64doc.LevelEncoding, func(n a64doc.Node) error {
			visited = append(visited, n.(*a64doc.InstructionEncoding))
			return nil
		})

		require.NoError(t, err)
		require.Len(t, visited, 1)
		assert.Equal(t, "ADD", visited[0].Mnemonic)
		assert.Equal(t, "ADD  <Wd>", visited[0].Template)
		assert.Equal(t, []string{}, visited[0].Features)
		assert.Equal(t, 1, loader.Stats().Dropped)
		assert.Equal(t, 2, loader.Stats().Encodings)
	})

	t.Run("visits encodings in document order", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		var names []string
		err := loader.WalkSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelEncoding, func(n a64doc.Node) error {
			names = append(names, n.(*a64doc.InstructionEncoding).Name)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"SUB_s", "SUB_d", "ADD_s", "FMOV_h"}, names)
	})

	t.Run("keeps ancestors readable during the visit", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		var headings []string
		var sets []a64doc.SetID
		err := loader.WalkSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelClass, func(n a64doc.Node) error {
			c := n.(*a64doc.InstructionClass)
			headings = append(headings, c.Section.Heading)
			sets = append(sets, c.Set().ID)
			assert.Empty(t, c.Encodings)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"Arithmetic", "Arithmetic", "FMOV"}, headings)
		assert.Equal(t, []a64doc.SetID{a64doc.SetSIMDFP, a64doc.SetSIMDFP, a64doc.SetSIMDFP}, sets)
	})

	t.Run("never builds encodings when stopping at classes", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		var ids []string
		err := loader.WalkSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelClass, func(n a64doc.Node) error {
			ids = append(ids, n.(*a64doc.InstructionClass).ID)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"sub", "add", "fmov"}, ids)
		assert.Equal(t, 0, loader.Stats().Encodings)
		assert.Equal(t, 3, loader.Stats().Classes)
		assert.Equal(t, 3, loader.Stats().Visited)
	})

	t.Run("visits sections without building classes", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		var files []string
		err := loader.WalkSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelSection, func(n a64doc.Node) error {
			sec := n.(*a64doc.InstructionSection)
			files = append(files, sec.File)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"arith.xml", "fmov.xml"}, files)
		assert.Equal(t, 0, loader.Stats().Classes)
	})

	t.Run("visits the set itself at set level", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		var visited []a64doc.Node
		err := loader.WalkSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelSet, func(n a64doc.Node) error {
			visited = append(visited, n)
			return nil
		})

		require.NoError(t, err)
		require.Len(t, visited, 1)
		assert.Equal(t, "SIMD&FP", visited[0].(*a64doc.InstructionSet).Name)
		assert.Equal(t, 0, loader.Stats().Sections)
	})

	t.Run("evicts every visited child", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		var classes []*a64doc.InstructionClass
		var set *a64doc.InstructionSet
		err := loader.WalkSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelEncoding, func(n a64doc.Node) error {
			e := n.(*a64doc.InstructionEncoding)
			// Only the encoding being visited is retained by its class.
			assert.Equal(t, []*a64doc.InstructionEncoding{e}, e.Class.Encodings)
			assert.Len(t, e.Section().Classes, 1)
			assert.Len(t, e.Set().Sections, 1)
			classes = append(classes, e.Class)
			set = e.Set()
			return nil
		})

		require.NoError(t, err)
		require.NotEmpty(t, classes)
		for _, c := range classes {
			assert.Empty(t, c.Encodings)
			assert.Empty(t, c.Section.Classes)
		}
		assert.Empty(t, set.Sections)
	})

	t.Run("resolves features through the fallback chain", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		features := make(map[string][]string)
		err := loader.WalkSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelEncoding, func(n a64doc.Node) error {
			e := n.(*a64doc.InstructionEncoding)
			features[e.Name] = e.Features
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"FEAT_FP"}, features["SUB_s"])
		assert.Equal(t, []string{"FEAT_AdvSIMD"}, features["ADD_s"])
		assert.Equal(t, []string{"FEAT_FP16"}, features["FMOV_h"])
	})

	t.Run("stops early when the visitor returns ErrStop", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		count := 0
		err := loader.WalkSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelEncoding, func(n a64doc.Node) error {
			count++
			if count == 2 {
				return a64doc.ErrStop
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, 1, loader.Stats().Sections, "second section must not be opened")
	})

	t.Run("returns visitor errors", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)
		boom := errors.New("boom")

		err := loader.WalkSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelEncoding, func(n a64doc.Node) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
	})

	t.Run("returns ENOTFOUND for missing index", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(addFS)

		err := loader.WalkSet(context.Background(), a64doc.SetSVE, a64doc.LevelEncoding, func(n a64doc.Node) error {
			return nil
		})

		require.Error(t, err)
		assert.Equal(t, a64doc.ENOTFOUND, a64doc.ErrorCode(err))
		assert.Contains(t, a64doc.ErrorMessage(err), "sveindex.xml")
	})

	t.Run("returns ENOTFOUND for missing section", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"index.xml": file(`<allinstrs><iform iformfile="gone.xml"/></allinstrs>`),
		}
		loader := etree.NewLoaderFS(fsys)

		err := loader.WalkSet(context.Background(), a64doc.SetBase, a64doc.LevelEncoding, func(n a64doc.Node) error {
			return nil
		})

		require.Error(t, err)
		assert.Equal(t, a64doc.ENOTFOUND, a64doc.ErrorCode(err))
		assert.Contains(t, a64doc.ErrorMessage(err), "gone.xml")
	})

	t.Run("returns error for malformed document", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"index.xml": file(`<allinstrs><iform iformfile="bad.xml"/></allinstrs>`),
			"bad.xml":   file(`<instructionsection><classes>`),
		}
		loader := etree.NewLoaderFS(fsys)

		err := loader.WalkSet(context.Background(), a64doc.SetBase, a64doc.LevelEncoding, func(n a64doc.Node) error {
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.xml")
	})

	t.Run("rejects unknown set", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(addFS)

		err := loader.WalkSet(context.Background(), a64doc.SetID("mve"), a64doc.LevelEncoding, func(n a64doc.Node) error {
			return nil
		})

		assert.Equal(t, a64doc.EINVALID, a64doc.ErrorCode(err))
	})

	t.Run("returns context error before opening documents", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(addFS)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := loader.WalkSet(ctx, a64doc.SetBase, a64doc.LevelEncoding, func(n a64doc.Node) error {
			return nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, loader.Stats().Sets)
	})
}

func TestLoader_WalkSets(t *testing.T) {
	t.Parallel()

	t.Run("walks sets in the given order", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{}
		for name, f := range addFS {
			fsys[name] = f
		}
		for name, f := range orderFS {
			fsys[name] = f
		}
		loader := etree.NewLoaderFS(fsys)

		var sets []a64doc.SetID
		err := loader.WalkSets(context.Background(), a64doc.LevelSection, func(n a64doc.Node) error {
			sets = append(sets, n.(*a64doc.InstructionSection).Set.ID)
			return nil
		}, a64doc.SetSIMDFP, a64doc.SetBase)

		require.NoError(t, err)
		assert.Equal(t, []a64doc.SetID{a64doc.SetSIMDFP, a64doc.SetSIMDFP, a64doc.SetBase}, sets)
	})

	t.Run("defaults to every set and fails on the first missing one", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(addFS)

		visited := 0
		err := loader.WalkSets(context.Background(), a64doc.LevelEncoding, func(n a64doc.Node) error {
			visited++
			return nil
		})

		require.Error(t, err)
		assert.Equal(t, a64doc.ENOTFOUND, a64doc.ErrorCode(err))
		assert.Contains(t, a64doc.ErrorMessage(err), "fpsimdindex.xml")
		assert.Equal(t, 1, visited)
	})
}

func TestLoader_WalkSection(t *testing.T) {
	t.Parallel()

	t.Run("uses a placeholder set when none is given", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		var sets []a64doc.SetID
		err := loader.WalkSection(context.Background(), "fmov.xml", a64doc.LevelEncoding, nil, func(n a64doc.Node) error {
			sets = append(sets, n.(*a64doc.InstructionEncoding).Set().ID)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []a64doc.SetID{"-"}, sets)
	})

	t.Run("rejects set level", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		err := loader.WalkSection(context.Background(), "fmov.xml", a64doc.LevelSet, nil, func(n a64doc.Node) error {
			return nil
		})

		assert.Equal(t, a64doc.EINVALID, a64doc.ErrorCode(err))
	})
}

func TestLoader_CollectSection(t *testing.T) {
	t.Parallel()

	t.Run("materializes the whole section", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)
		set := a64doc.NewInstructionSet(a64doc.SetSIMDFP)

		sec, err := loader.CollectSection(context.Background(), "arith.xml", a64doc.LevelEncoding, set)

		require.NoError(t, err)
		assert.Equal(t, "arith", sec.ID)
		assert.Equal(t, "Scalar arithmetic", sec.Brief)
		assert.Equal(t, "fpsimd", sec.DocVars["instr-class"])
		assert.Equal(t, []*a64doc.InstructionSection{sec}, set.Sections)
		require.Len(t, sec.Classes, 2)
		assert.Len(t, sec.Classes[0].Encodings, 2)
		assert.Len(t, sec.Classes[1].Encodings, 1)
		assert.Same(t, sec.Classes[0], sec.Classes[0].Encodings[1].Class)
	})

	t.Run("drops encodings without a mnemonic", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(addFS)

		sec, err := loader.CollectSection(context.Background(), "add_addsub_imm.xml", a64doc.LevelEncoding, nil)

		require.NoError(t, err)
		require.Len(t, sec.Classes, 2)
		assert.Len(t, sec.Classes[0].Encodings, 1)
		assert.Empty(t, sec.Classes[1].Encodings)
		assert.Equal(t, "-", string(sec.Set.ID))
	})

	t.Run("stops building at the requested level", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		sec, err := loader.CollectSection(context.Background(), "arith.xml", a64doc.LevelClass, nil)

		require.NoError(t, err)
		require.Len(t, sec.Classes, 2)
		assert.Empty(t, sec.Classes[0].Encodings)
		assert.Equal(t, 0, loader.Stats().Encodings)
	})
}

func TestLoader_CollectSets(t *testing.T) {
	t.Parallel()

	t.Run("retains every node", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		sets, err := loader.CollectSets(context.Background(), a64doc.LevelEncoding, a64doc.SetSIMDFP)

		require.NoError(t, err)
		require.Len(t, sets, 1)
		require.Len(t, sets[0].Sections, 2)

		encodings := 0
		for _, sec := range sets[0].Sections {
			for _, c := range sec.Classes {
				encodings += len(c.Encodings)
			}
		}
		assert.Equal(t, 4, encodings)
		assert.Equal(t, 0, loader.Stats().Visited)
	})

	t.Run("returns nothing on error", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		sets, err := loader.CollectSets(context.Background(), a64doc.LevelEncoding, a64doc.SetSIMDFP, a64doc.SetSME)

		require.Error(t, err)
		assert.Nil(t, sets)
	})

	t.Run("collects a set without sections at set level", func(t *testing.T) {
		t.Parallel()

		loader := etree.NewLoaderFS(orderFS)

		set, err := loader.CollectSet(context.Background(), a64doc.SetSIMDFP, a64doc.LevelSet)

		require.NoError(t, err)
		assert.Equal(t, "fpsimdindex.xml", set.IndexFile)
		assert.Empty(t, set.Sections)
	})
}
