// File: table.go
// Title: xentpl SLR(1) Table Construction
// Description: Builds the ACTION and GOTO tables of the shift-reduce parser
//              from the production list: canonical LR(0) item sets,
//              nullable/FIRST/FOLLOW sets and SLR(1) reduce placement. A
//              conflict is a programming error and panics.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.2.0: Initial table generator

package parser

import (
	"fmt"
	"sort"
	"strings"
)

type actionKind uint8

const (
	actError actionKind = iota
	actShift
	actReduce
	actAccept
)

type action struct {
	kind   actionKind
	target int // state for shift, production for reduce
}

// termSet is a bit set over terminal symbols
type termSet uint64

func (s termSet) has(t symbol) bool { return s&(1<<uint(t)) != 0 }

func (s *termSet) add(t symbol) { *s |= 1 << uint(t) }

// lrTables holds the generated parse tables
type lrTables struct {
	action [][]action // [state][terminal]
	gotos  [][]int    // [state][nonterminal - ntBase], -1 when undefined
}

// item is an LR(0) item: a production with a dot position
type item struct {
	prod int
	dot  int
}

func buildTables(prods []production) *lrTables {
	nullable, first := computeFirst(prods)
	follow := computeFollow(prods, nullable, first)

	states := [][]item{closure(prods, []item{{prod: 0, dot: 0}})}
	index := map[string]int{itemSetKey(states[0]): 0}
	var transitions []map[symbol]int

	for i := 0; i < len(states); i++ {
		trans := make(map[symbol]int)
		for _, sym := range symbolsAfterDot(prods, states[i]) {
			set := closure(prods, advance(prods, states[i], sym))
			key := itemSetKey(set)
			j, ok := index[key]
			if !ok {
				j = len(states)
				states = append(states, set)
				index[key] = j
			}
			trans[sym] = j
		}
		transitions = append(transitions, trans)
	}

	t := &lrTables{
		action: make([][]action, len(states)),
		gotos:  make([][]int, len(states)),
	}
	for i := range states {
		t.action[i] = make([]action, tokenKindCount)
		t.gotos[i] = make([]int, symbolCount-ntBase)
		for j := range t.gotos[i] {
			t.gotos[i][j] = -1
		}
	}

	set := func(state int, term symbol, a action) {
		existing := t.action[state][term]
		if existing.kind != actError && existing != a {
			panic(fmt.Sprintf("parser: grammar conflict in state %d on %s: %v vs %v",
				state, TokenType(term), existing, a))
		}
		t.action[state][term] = a
	}

	for i, items := range states {
		for sym, j := range transitions[i] {
			if sym.isTerminal() {
				set(i, sym, action{kind: actShift, target: j})
			} else {
				t.gotos[i][sym-ntBase] = j
			}
		}
		for _, it := range items {
			p := prods[it.prod]
			if it.dot < len(p.rhs) {
				continue
			}
			if it.prod == 0 {
				set(i, symbol(TokenEOF), action{kind: actAccept})
				continue
			}
			for term := symbol(0); term < symbol(tokenKindCount); term++ {
				if follow[p.lhs-ntBase].has(term) {
					set(i, term, action{kind: actReduce, target: it.prod})
				}
			}
		}
	}

	return t
}

// closure adds every item reachable through a nonterminal after the dot
func closure(prods []production, kernel []item) []item {
	seen := make(map[item]bool, len(kernel))
	out := make([]item, 0, len(kernel))
	work := append([]item(nil), kernel...)

	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)

		rhs := prods[it.prod].rhs
		if it.dot >= len(rhs) || rhs[it.dot].isTerminal() {
			continue
		}
		next := rhs[it.dot]
		for pi, p := range prods {
			if p.lhs == next {
				work = append(work, item{prod: pi, dot: 0})
			}
		}
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].prod != out[b].prod {
			return out[a].prod < out[b].prod
		}
		return out[a].dot < out[b].dot
	})
	return out
}

// symbolsAfterDot lists the distinct symbols following a dot, in item order
func symbolsAfterDot(prods []production, items []item) []symbol {
	var out []symbol
	seen := make(map[symbol]bool)
	for _, it := range items {
		rhs := prods[it.prod].rhs
		if it.dot < len(rhs) && !seen[rhs[it.dot]] {
			seen[rhs[it.dot]] = true
			out = append(out, rhs[it.dot])
		}
	}
	return out
}

func advance(prods []production, items []item, sym symbol) []item {
	var out []item
	for _, it := range items {
		rhs := prods[it.prod].rhs
		if it.dot < len(rhs) && rhs[it.dot] == sym {
			out = append(out, item{prod: it.prod, dot: it.dot + 1})
		}
	}
	return out
}

func itemSetKey(items []item) string {
	var sb strings.Builder
	for _, it := range items {
		fmt.Fprintf(&sb, "%d.%d;", it.prod, it.dot)
	}
	return sb.String()
}

// computeFirst returns nullable flags and FIRST sets per nonterminal
func computeFirst(prods []production) ([]bool, []termSet) {
	n := int(symbolCount - ntBase)
	nullable := make([]bool, n)
	first := make([]termSet, n)

	for changed := true; changed; {
		changed = false
		for _, p := range prods {
			lhs := p.lhs - ntBase
			allNullable := true
			for _, sym := range p.rhs {
				if sym.isTerminal() {
					if !first[lhs].has(sym) {
						first[lhs].add(sym)
						changed = true
					}
					allNullable = false
					break
				}
				if merged := first[lhs] | first[sym-ntBase]; merged != first[lhs] {
					first[lhs] = merged
					changed = true
				}
				if !nullable[sym-ntBase] {
					allNullable = false
					break
				}
			}
			if allNullable && !nullable[lhs] {
				nullable[lhs] = true
				changed = true
			}
		}
	}
	return nullable, first
}

// computeFollow returns FOLLOW sets per nonterminal
func computeFollow(prods []production, nullable []bool, first []termSet) []termSet {
	follow := make([]termSet, symbolCount-ntBase)
	follow[0].add(symbol(TokenEOF))

	for changed := true; changed; {
		changed = false
		for _, p := range prods {
			for i, sym := range p.rhs {
				if sym.isTerminal() {
					continue
				}
				target := &follow[sym-ntBase]
				before := *target

				restNullable := true
				for _, next := range p.rhs[i+1:] {
					if next.isTerminal() {
						target.add(next)
						restNullable = false
						break
					}
					*target |= first[next-ntBase]
					if !nullable[next-ntBase] {
						restNullable = false
						break
					}
				}
				if restNullable {
					*target |= follow[p.lhs-ntBase]
				}
				if *target != before {
					changed = true
				}
			}
		}
	}
	return follow
}

// expectedTokens lists the token kinds accepted in a state
func (t *lrTables) expectedTokens(state int) []string {
	var out []string
	for term, a := range t.action[state] {
		if a.kind != actError {
			out = append(out, TokenType(term).String())
		}
	}
	return out
}
