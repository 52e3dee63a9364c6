// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"context"
	"log/slog"

	"github.com/gaissmai/substtree/term"
)

// Factory creates, promotes, converts and releases the nodes of
// substitution trees over payloads of type D.
//
// A Factory and the trees built with it must be used by one goroutine
// at a time. Use one Factory per goroutine for independent indexes.
type Factory[D any] struct {
	cmp     func(a, b D) int
	sig     *term.Signature
	pool    *multiPool[D]
	metrics *Metrics
	log     *slog.Logger
	cfg     Config
}

type options struct {
	sig     *term.Signature
	log     *slog.Logger
	metrics *Metrics
	cfg     Config
}

// Option configures a Factory.
type Option func(*options)

// WithSignature sets the signature used to resolve head types and sorts.
// Higher-order nodes and sort discrimination need one.
func WithSignature(sig *term.Signature) Option {
	return func(o *options) { o.sig = sig }
}

// WithLogger sets the logger, the default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics sets the metrics the factory and its nodes report to.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithConfig sets the promotion thresholds.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// NewFactory returns a factory for payloads ordered by cmp, a strict
// total order. It fails only for an invalid config.
func NewFactory[D any](cmp func(a, b D) int, opts ...Option) (*Factory[D], error) {
	if cmp == nil {
		assertf("NewFactory with nil comparator")
	}

	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}

	return &Factory[D]{
		cmp:     cmp,
		sig:     o.sig,
		pool:    newMultiPool[D](o.metrics),
		metrics: o.metrics,
		log:     o.log,
		cfg:     o.cfg,
	}, nil
}

// Signature returns the signature of the factory, may be nil.
func (f *Factory[D]) Signature() *term.Signature { return f.sig }

// Config returns the promotion thresholds.
func (f *Factory[D]) Config() Config { return f.cfg }

// Stats returns the pool counters.
func (f *Factory[D]) Stats() PoolStats { return f.pool.stats() }

// base builds the shared attributes before anything is allocated,
// so a contract violation leaks no pooled node.
func (f *Factory[D]) base(t term.TermList, ho, isLeaf bool) nodeBase {
	b := nodeBase{term: t}
	if ho {
		b.setHigherOrder(f.sig, isLeaf)
	}
	return b
}

// CreateLeaf returns an empty unsorted leaf without a term.
func (f *Factory[D]) CreateLeaf() *Leaf[D] {
	return f.newLeaf(nodeBase{}, UnsortedList)
}

// CreateLeafWithTerm returns an empty unsorted leaf for term t. A
// higher-order leaf caches the type of the head variable of t and
// panics if t has no variable head.
func (f *Factory[D]) CreateLeafWithTerm(t term.TermList, ho bool) *Leaf[D] {
	return f.newLeaf(f.base(t, ho, true), UnsortedList)
}

func (f *Factory[D]) newLeaf(b nodeBase, algo Algorithm) *Leaf[D] {
	b.algo = algo
	l := f.pool.getLeaf(b)
	l.cmp = f.cmp
	l.metrics = f.metrics
	if algo == SkipList {
		l.skip = newPayloadSkipList(f.cmp)
	}
	return l
}

// CreateIntermediateNode returns an empty array-backed node without a term.
func (f *Factory[D]) CreateIntermediateNode(childVar uint32, withSorts bool) *IntermediateNode[D] {
	return f.newNode(nodeBase{}, childVar, withSorts, UnsortedList)
}

// CreateIntermediateNodeWithTerm returns an empty array-backed node for
// term t. A higher-order node never does sort discrimination.
func (f *Factory[D]) CreateIntermediateNodeWithTerm(t term.TermList, childVar uint32, withSorts, ho bool) *IntermediateNode[D] {
	return f.newNode(f.base(t, ho, false), childVar, withSorts && !ho, UnsortedList)
}

func (f *Factory[D]) newNode(b nodeBase, childVar uint32, withSorts bool, algo Algorithm) *IntermediateNode[D] {
	if withSorts && f.sig == nil {
		assertf("sort discrimination for node %s needs a signature", b.term)
	}
	b.algo = algo
	n := f.pool.getNode(b)
	n.sig = f.sig
	n.cmp = f.cmp
	n.childVar = childVar
	n.withSorts = withSorts
	if algo == SkipList {
		n.skip = newChildSkipList()
	}
	return n
}

// ConvertToHigherOrder returns a higher-order node with the content and
// storage strategy of n. The input must be first order, it is emptied
// and released, the caller replaces it in the parent.
//
// Var-headed children of an intermediate node move to the type table,
// two of them with the same head type are a contract violation. Nothing
// is allocated or changed then.
func (f *Factory[D]) ConvertToHigherOrder(n Node[D]) Node[D] {
	if n.IsHigherOrder() {
		assertf("%s %s is already higher order", kindOf(n), n.Term())
	}

	var res Node[D]
	switch x := n.(type) {
	case *Leaf[D]:
		l := f.newLeaf(f.base(x.term, true, true), UnsortedList)
		l.algo = x.algo
		l.moveChildren(x)
		res = l
	case *IntermediateNode[D]:
		b := f.base(x.term, true, false)
		f.checkVarHeadTypes(x)
		m := f.newNode(b, x.childVar, false, x.algo)
		m.loadChildren(x.All())
		x.makeEmpty()
		res = m
	}
	f.pool.release(n)

	f.metrics.converted(kindOf(res))
	f.log.LogAttrs(context.Background(), slog.LevelDebug, "converted to higher order",
		slog.String("kind", kindOf(res)),
		slog.String("term", res.Term().String()),
		slog.String("algorithm", res.Algorithm().String()),
		slog.Int("size", res.Size()))
	return res
}

// EnsureLeafEfficiency promotes an unsorted leaf to a skip list once its
// size exceeds the leaf threshold and returns the leaf to use from now on.
// The old leaf is released. Skip-list leaves are returned unchanged, there
// is no way back.
func (f *Factory[D]) EnsureLeafEfficiency(l *Leaf[D], ho bool) *Leaf[D] {
	if l.algo != UnsortedList || l.Size() <= f.cfg.LeafThreshold {
		return l
	}

	res := f.newLeaf(f.base(l.term, ho || l.ho, true), SkipList)
	res.loadChildren(l.All())
	l.makeEmpty()
	f.pool.release(l)

	f.assimilated(res)
	return res
}

// EnsureIntermediateNodeEfficiency promotes an array-backed node to a
// skip list once its size exceeds the node threshold and returns the node
// to use from now on. Slots handed out before must be filled by then.
func (f *Factory[D]) EnsureIntermediateNodeEfficiency(n *IntermediateNode[D], ho bool) *IntermediateNode[D] {
	if n.algo != UnsortedList || n.Size() <= f.cfg.NodeThreshold {
		return n
	}

	ho = ho || n.ho
	b := f.base(n.term, ho, false)
	if ho {
		f.checkVarHeadTypes(n)
	}
	res := f.newNode(b, n.childVar, n.withSorts && !ho, SkipList)
	res.loadChildren(n.All())
	n.makeEmpty()
	f.pool.release(n)

	f.assimilated(res)
	return res
}

// checkVarHeadTypes panics if n cannot become higher order.
func (f *Factory[D]) checkVarHeadTypes(n *IntermediateNode[D]) {
	if a, b, clash := n.varHeadClash(); clash {
		assertf("node %s: var-headed children %s and %s share head type %s",
			n.term, a, b, f.sig.HeadType(a.Term()))
	}
}

func (f *Factory[D]) assimilated(n Node[D]) {
	f.metrics.assimilated(kindOf(n))
	f.log.LogAttrs(context.Background(), slog.LevelDebug, "assimilated into skip list",
		slog.String("kind", kindOf(n)),
		slog.String("term", n.Term().String()),
		slog.Bool("higher_order", n.IsHigherOrder()),
		slog.Int("size", n.Size()))
}

// Destroy releases n, for an intermediate node with its whole subtree.
// The node must already be detached from its parent.
func (f *Factory[D]) Destroy(n Node[D]) {
	if in, ok := n.(*IntermediateNode[D]); ok {
		in.DestroyChildren()
	}
	f.pool.release(n)
}
