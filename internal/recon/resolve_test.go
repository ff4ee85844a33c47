package recon

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/staticpipe/internal/estimator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestResolve_SingleNode(t *testing.T) {
	g := NewGraph()
	log := &materializeLog{}
	label, err := g.BoolInput("Label")
	require.NoError(t, err)
	f1, err := g.VectorInput("F1")
	require.NoError(t, err)
	f2, err := g.VectorInput("F2")
	require.NoError(t, err)

	n, err := g.AddNode("ffm", &recorder{kind: "ffm", log: log},
		[]Column{label.Column, f1.Column, f2.Column},
		[]OutputSpec{{Role: "Score", Type: ScalarType}, {Role: "PredictedLabel", Type: BoolType}})
	require.NoError(t, err)
	score, predicted := n.Outputs()[0], n.Outputs()[1]

	p, err := g.Resolve(context.Background(), Want(score), Want(predicted))
	require.NoError(t, err)

	require.Len(t, p.Steps, 1)
	step := p.Steps[0]
	assert.Equal(t, "ffm[0]", step.Address)
	assert.Equal(t, []string{"Label", "F1", "F2"}, step.Inputs)
	assert.Equal(t, []string{"Score", "PredictedLabel"}, step.Outputs)
	assert.Equal(t, []string{"Score", "PredictedLabel"}, p.Outputs)

	name, ok := p.NameOf(score)
	require.True(t, ok)
	assert.Equal(t, "Score", name)
	name, ok = p.NameOf(label.Column)
	require.True(t, ok)
	assert.Equal(t, "Label", name)

	require.Len(t, log.calls, 1)
	assert.Equal(t, []string{"Label", "F1", "F2"}, log.calls[0].inputs)
}

func TestResolve_DependencyOrder(t *testing.T) {
	// a <- x ; b <- a ; c <- (b, a, y) ; d <- x (unreached)
	g := NewGraph()
	log := &materializeLog{}
	x := mustInput(t, g, "x")
	y := mustInput(t, g, "y")

	nodeD := addNode(t, g, log, "d", []Column{x}, "out")
	nodeC := func() *Node {
		nodeA := addNode(t, g, log, "a", []Column{x}, "out")
		nodeB := addNode(t, g, log, "b", []Column{output(t, nodeA, "out")}, "out")
		return addNode(t, g, log, "c", []Column{output(t, nodeB, "out"), output(t, nodeA, "out"), y}, "out")
	}()

	p, err := g.Resolve(context.Background(), Want(output(t, nodeC, "out")))
	require.NoError(t, err)

	var kinds []string
	for _, s := range p.Steps {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []string{"a", "b", "c"}, kinds)
	assert.False(t, nodeD.Materialized(), "unreachable nodes are not materialized")

	// Every step comes after the steps producing its inputs.
	produced := map[string]int{"x": -1, "y": -1}
	for i, s := range p.Steps {
		for _, in := range s.Inputs {
			at, ok := produced[in]
			require.True(t, ok, "input %q of step %s is not produced before it", in, s.Address)
			assert.Less(t, at, i)
		}
		for _, out := range s.Outputs {
			produced[out] = i
		}
	}

	// Default names collide on the shared role and get suffixed in order.
	assert.Equal(t, []string{"out"}, p.Steps[0].Outputs)
	assert.Equal(t, []string{"out_1"}, p.Steps[1].Outputs)
	assert.Equal(t, []string{"out_2"}, p.Steps[2].Outputs)
	assert.Equal(t, []string{"out_1", "out", "y"}, p.Steps[2].Inputs)
}

func TestResolve_SharedDependencyMaterializedOnce(t *testing.T) {
	g := NewGraph()
	log := &materializeLog{}
	x := mustInput(t, g, "x")
	base := addNode(t, g, log, "base", []Column{x}, "shared")
	left := addNode(t, g, log, "left", []Column{output(t, base, "shared")}, "l")
	right := addNode(t, g, log, "right", []Column{output(t, base, "shared")}, "r")

	p, err := g.Resolve(context.Background(), Want(output(t, left, "l")), Want(output(t, right, "r")))
	require.NoError(t, err)
	require.Len(t, p.Steps, 3)
	require.Len(t, log.calls, 3)
	assert.Equal(t, "base", log.calls[0].kind)
	assert.Equal(t, "left", log.calls[1].kind)
	assert.Equal(t, "right", log.calls[2].kind)
}

func TestResolve_Cycles(t *testing.T) {
	t.Run("self reference", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "loop", []Column{mustInput(t, g, "x")}, "out")
		out := output(t, n, "out")
		// Declarations cannot form a cycle, so corrupt the table directly.
		g.nodes[0].inputs = append(g.nodes[0].inputs, out)

		p, err := g.Resolve(context.Background(), Want(out))
		require.ErrorIs(t, err, ErrCycleDetected)
		assert.Contains(t, err.Error(), "loop[0] -> loop[0]")
		assert.Nil(t, p)
		assert.Empty(t, log.calls)
	})

	t.Run("mutual reference", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		first := addNode(t, g, log, "first", []Column{mustInput(t, g, "x")}, "a")
		second := addNode(t, g, log, "second", []Column{output(t, first, "a")}, "b")
		g.nodes[0].inputs = append(g.nodes[0].inputs, output(t, second, "b"))

		p, err := g.Resolve(context.Background(), Want(output(t, second, "b")))
		require.ErrorIs(t, err, ErrCycleDetected)
		assert.Contains(t, err.Error(), "second[1] -> first[0] -> second[1]")
		assert.Nil(t, p)
		assert.Empty(t, log.calls)
		assert.False(t, first.Materialized())
		assert.False(t, second.Materialized())
	})

	t.Run("revisit without cycle is fine", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		x := mustInput(t, g, "x")
		a := addNode(t, g, log, "a", []Column{x}, "a1", "a2")
		b := addNode(t, g, log, "b", []Column{output(t, a, "a1"), output(t, a, "a2")}, "b")

		_, err := g.Resolve(context.Background(), Want(output(t, b, "b")), Want(output(t, a, "a2")))
		require.NoError(t, err)
		assert.Len(t, log.calls, 2)
	})
}

func TestResolve_Naming(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit target names", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "ffm", []Column{mustInput(t, g, "x")}, "Score", "Extra")

		p, err := g.Resolve(ctx, WantAs(output(t, n, "Score"), "Click"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Click", "Extra"}, p.Steps[0].Outputs)
		assert.Equal(t, []string{"Click"}, p.Outputs)
	})

	t.Run("reserved names are skipped", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "ffm", []Column{mustInput(t, g, "x")}, "Score")

		p, err := g.ResolveWith(ctx, Options{Reserved: []string{"Score", "Score_1"}}, Want(output(t, n, "Score")))
		require.NoError(t, err)
		assert.Equal(t, []string{"Score_2"}, p.Outputs)
	})

	t.Run("generated names avoid root names", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "ffm", []Column{mustInput(t, g, "Score")}, "Score")

		p, err := g.Resolve(ctx, Want(output(t, n, "Score")))
		require.NoError(t, err)
		assert.Equal(t, []string{"Score"}, p.Steps[0].Inputs)
		assert.Equal(t, []string{"Score_1"}, p.Steps[0].Outputs)
	})

	t.Run("generated names avoid unreached roots", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		a := mustInput(t, g, "A")
		mustInput(t, g, "Score")
		n := addNode(t, g, log, "k", []Column{a}, "Score")

		p, err := g.Resolve(ctx, Want(output(t, n, "Score")))
		require.NoError(t, err)
		assert.Equal(t, []string{"Score_1"}, p.Outputs)
		_, named := p.NameOf(Column{g: g, id: 1})
		assert.False(t, named, "unreached roots are not part of the pipeline")
	})

	t.Run("target named like an unreached root", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "k", []Column{mustInput(t, g, "A")}, "out")
		mustInput(t, g, "Score")

		_, err := g.Resolve(ctx, WantAs(output(t, n, "out"), "Score"))
		require.ErrorIs(t, err, ErrDuplicateName)
		assert.Empty(t, log.calls)
	})

	t.Run("unreached roots sharing a name", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "k", []Column{mustInput(t, g, "A")}, "out")
		mustInput(t, g, "dup")
		mustInput(t, g, "dup")

		_, err := g.Resolve(ctx, Want(output(t, n, "out")))
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("two roots with one name", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "ffm", []Column{mustInput(t, g, "x"), mustInput(t, g, "x")}, "Score")

		p, err := g.Resolve(ctx, Want(output(t, n, "Score")))
		require.ErrorIs(t, err, ErrDuplicateName)
		assert.Nil(t, p)
		assert.Empty(t, log.calls)
	})

	t.Run("target named like a root", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "ffm", []Column{mustInput(t, g, "x")}, "Score")

		_, err := g.Resolve(ctx, WantAs(output(t, n, "Score"), "x"))
		require.ErrorIs(t, err, ErrDuplicateName)
		assert.Empty(t, log.calls)
	})

	t.Run("two targets with one name", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "ffm", []Column{mustInput(t, g, "x")}, "a", "b")

		_, err := g.Resolve(ctx, WantAs(output(t, n, "a"), "same"), WantAs(output(t, n, "b"), "same"))
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("one target with two names", func(t *testing.T) {
		g := NewGraph()
		log := &materializeLog{}
		n := addNode(t, g, log, "ffm", []Column{mustInput(t, g, "x")}, "a")

		_, err := g.Resolve(ctx, WantAs(output(t, n, "a"), "one"), WantAs(output(t, n, "a"), "two"))
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("renaming a root", func(t *testing.T) {
		g := NewGraph()
		x := mustInput(t, g, "x")

		_, err := g.Resolve(ctx, WantAs(x, "y"))
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("root passthrough", func(t *testing.T) {
		g := NewGraph()
		x := mustInput(t, g, "x")

		p, err := g.Resolve(ctx, Want(x))
		require.NoError(t, err)
		assert.Empty(t, p.Steps)
		assert.Equal(t, []string{"x"}, p.Outputs)
	})
}

func TestResolve_InvalidRequests(t *testing.T) {
	ctx := context.Background()
	g := NewGraph()
	other := NewGraph()
	foreign := mustInput(t, other, "foreign")

	_, err := g.Resolve(ctx)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = g.Resolve(ctx, Want(Column{}))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = g.Resolve(ctx, Want(foreign))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolve_SecondResolutionIsRejected(t *testing.T) {
	g := NewGraph()
	log := &materializeLog{}
	n := addNode(t, g, log, "ffm", []Column{mustInput(t, g, "x")}, "Score")
	target := Want(output(t, n, "Score"))

	_, err := g.Resolve(context.Background(), target)
	require.NoError(t, err)

	p, err := g.Resolve(context.Background(), target)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Nil(t, p)
	assert.Len(t, log.calls, 1)
}

func TestResolve_ReconcileFailureAborts(t *testing.T) {
	g := NewGraph()
	log := &materializeLog{}
	x := mustInput(t, g, "x")
	first := addNode(t, g, log, "first", []Column{x}, "a")
	boom := errors.New("trainer unavailable")
	failing, err := g.AddNode("second", &recorder{kind: "second", log: log, err: boom},
		[]Column{output(t, first, "a")}, []OutputSpec{scalarSpec("b")})
	require.NoError(t, err)
	last := addNode(t, g, log, "third", []Column{output(t, failing, "b")}, "c")

	p, err := g.Resolve(context.Background(), Want(output(t, last, "c")))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "second[1]")
	assert.Nil(t, p)
	assert.Len(t, log.calls, 2, "resolution stops at the failing node")
	assert.False(t, last.Materialized())
}

func TestResolve_CancelledContext(t *testing.T) {
	g := NewGraph()
	log := &materializeLog{}
	n := addNode(t, g, log, "ffm", []Column{mustInput(t, g, "x")}, "Score")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, err := g.Resolve(ctx, Want(output(t, n, "Score")))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, p)
	assert.Empty(t, log.calls)
}

func TestResolve_Deterministic(t *testing.T) {
	build := func() Plan {
		g := NewGraph()
		log := &materializeLog{}
		x := mustInput(t, g, "x")
		y := mustInput(t, g, "y")
		a := addNode(t, g, log, "a", []Column{x, y}, "Score", "PredictedLabel")
		b := addNode(t, g, log, "b", []Column{output(t, a, "Score"), y}, "Score", "PredictedLabel")
		c := addNode(t, g, log, "c", []Column{output(t, b, "Score"), output(t, a, "PredictedLabel")}, "Score")

		p, err := g.Resolve(context.Background(),
			Want(output(t, c, "Score")),
			WantAs(output(t, b, "PredictedLabel"), "Final"))
		require.NoError(t, err)
		return p.Plan()
	}

	first, second := build(), build()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("plans differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, []string{"Score_2", "Final"}, first.Outputs)
}

func TestPipeline_Fit(t *testing.T) {
	g := NewGraph()
	log := &materializeLog{}
	a := addNode(t, g, log, "a", []Column{mustInput(t, g, "x")}, "mid")
	b := addNode(t, g, log, "b", []Column{output(t, a, "mid")}, "final")

	p, err := g.Resolve(context.Background(), Want(output(t, b, "final")))
	require.NoError(t, err)

	data, err := estimator.NewTable([]string{"x"}, []cty.Value{ones(3)})
	require.NoError(t, err)

	fitted, err := p.Fit(context.Background(), data)
	require.NoError(t, err)
	out, err := fitted.Transform(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "mid", "final"}, out.Columns())
	assert.Equal(t, 3, out.Rows())
}
