// Package chardist provides substitution costs between characters for the
// weighted edit distance. A cost of 0 means identical, 1 means unrelated.
package chardist

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Func returns the substitution cost of a and b in [0, 1].
type Func func(a, b rune) float64

// Constant charges 1 for every pair of distinct characters.
func Constant(a, b rune) float64 {
	if a == b {
		return 0
	}
	return 1
}

// Tier groups key pairs that are equally close on a keyboard. Weight is the
// similarity of the pair, the resulting cost is 1 - Weight.
type Tier struct {
	Weight float64
	// Pairs holds two-character strings separated by spaces.
	Pairs string
}

type pair struct{ a, b rune }

// Keyboard looks up the cost of unordered character pairs.
type Keyboard struct {
	name  string
	costs map[pair]float64
}

// NewKeyboard builds a lookup table from the given tiers. A pair listed in
// more than one tier keeps the first weight.
func NewKeyboard(name string, tiers ...Tier) (*Keyboard, error) {
	k := &Keyboard{name: name, costs: make(map[pair]float64)}
	for _, tier := range tiers {
		if tier.Weight < 0 || tier.Weight > 1 {
			return nil, errors.Newf("keyboard %s: weight %v out of range [0, 1]", name, tier.Weight)
		}
		for _, field := range strings.Fields(tier.Pairs) {
			keys := []rune(field)
			if len(keys) != 2 {
				return nil, errors.Newf("keyboard %s: %q is not a pair of keys", name, field)
			}
			p := pair{keys[0], keys[1]}
			if _, ok := k.costs[p]; ok {
				continue
			}
			k.costs[p] = 1 - tier.Weight
			k.costs[pair{keys[1], keys[0]}] = 1 - tier.Weight
		}
	}
	return k, nil
}

// Distance returns the cost of replacing a with b. Pairs that are not in the
// table cost 1.
func (k *Keyboard) Distance(a, b rune) float64 {
	if a == b {
		return 0
	}
	if cost, ok := k.costs[pair{a, b}]; ok {
		return cost
	}
	return 1
}

func (k *Keyboard) String() string {
	return k.name
}

// Pairs returns the number of unordered pairs in the table.
func (k *Keyboard) Pairs() int {
	return len(k.costs) / 2
}

const (
	adjacent = 0.4
	near     = 0.1
)

// QWERTZ is the German keyboard layout. Adjacent keys cost 0.6, keys two
// steps apart 0.9.
var QWERTZ = mustKeyboard(NewKeyboard("qwertz",
	Tier{Weight: adjacent, Pairs: `
		aq as aw ay
		bg bh bn bv
		cd cf cv cx
		de df dr ds dx
		er es ew
		fg fr ft fv
		gh gt gv gz
		hj hn hu hz
		ij ik io iu
		jk jm jn ju
		kl km ko
		lo lp
		mn
		op
		qw
		rt
		sw sx sy
		tz
		uz
		xy`},
	Tier{Weight: near, Pairs: `
		ac ad ae ar ax
		bc bf bt bz bj bm
		cy cs ce cr cg
		dy dt dg dv
		eq ex ef et e3 e4
		fh fs fx fz
		gu gj gn gr
		hi hk hm hv hr
		ip im in iz i8 i9
		jo jl jt
		kp kn ku
		lm lu
		mu
		nu nz nv
		ou o9 o0
		qy qx q1 q2
		rw rs rx rv rz r4 r5
		tv tu t5 t6
		u7 u8
		vx
		wy wx w2 w3`},
))

func mustKeyboard(k *Keyboard, err error) *Keyboard {
	if err != nil {
		panic(err)
	}
	return k
}

// ByName returns the cost function for a keyboard name. "none" and the empty
// name select Constant.
func ByName(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "constant":
		return Constant, nil
	case QWERTZ.String():
		return QWERTZ.Distance, nil
	}
	return nil, errors.WithHint(
		errors.Newf("unknown keyboard %q", name),
		"use one of: none, qwertz")
}
