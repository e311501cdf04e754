package align

import "sort"

// Matcher aligns a source sequence against a target sequence. Results are
// computed lazily and cached; a Matcher must not be shared between
// goroutines while it is still computing.
type Matcher[T comparable] struct {
	a, b []T

	// b2j maps each unit of b to the ascending indices where it occurs.
	b2j map[T][]int

	matching []Match
	opcodes  []Opcode
}

// NewMatcher creates a Matcher for the source a and target b.
func NewMatcher[T comparable](a, b []T) *Matcher[T] {
	m := &Matcher[T]{a: a, b: b}
	m.b2j = make(map[T][]int, len(b))
	for j, unit := range b {
		m.b2j[unit] = append(m.b2j[unit], j)
	}
	return m
}

// LongestMatch finds the longest block with a[alo:ahi] and b[blo:bhi] in
// common. Of all maximal blocks it returns the one that starts earliest in a,
// and of those the one that starts earliest in b. A zero Size means there is
// no common unit.
func (m *Matcher[T]) LongestMatch(alo, ahi, blo, bhi int) Match {
	best := Match{A: alo, B: blo}

	// j2len[j] is the length of the match ending at a[i-1] and b[j].
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > best.Size {
				best = Match{A: i - k + 1, B: j - k + 1, Size: k}
			}
		}
		j2len = next
	}
	return best
}

// MatchingBlocks returns the non-overlapping matching blocks in increasing
// order of A and B. Adjacent blocks are merged. The last element is always
// the sentinel {len(a), len(b), 0}.
func (m *Matcher[T]) MatchingBlocks() []Match {
	if m.matching != nil {
		return m.matching
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var blocks []Match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		x := m.LongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if x.Size == 0 {
			continue
		}
		blocks = append(blocks, x)
		if s.alo < x.A && s.blo < x.B {
			queue = append(queue, span{s.alo, x.A, s.blo, x.B})
		}
		if x.A+x.Size < s.ahi && x.B+x.Size < s.bhi {
			queue = append(queue, span{x.A + x.Size, s.ahi, x.B + x.Size, s.bhi})
		}
	}
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].A != blocks[j].A {
			return blocks[i].A < blocks[j].A
		}
		return blocks[i].B < blocks[j].B
	})

	merged := make([]Match, 0, len(blocks)+1)
	for _, blk := range blocks {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.A+last.Size == blk.A && last.B+last.Size == blk.B {
				last.Size += blk.Size
				continue
			}
		}
		merged = append(merged, blk)
	}
	merged = append(merged, Match{A: len(m.a), B: len(m.b)})

	m.matching = merged
	return m.matching
}

// Opcodes returns the edit script turning a into b. The opcodes cover
// [0, len(a)) and [0, len(b)) contiguously, in order, with no gaps.
func (m *Matcher[T]) Opcodes() []Opcode {
	if m.opcodes != nil {
		return m.opcodes
	}

	var ops []Opcode
	i, j := 0, 0
	for _, blk := range m.MatchingBlocks() {
		var tag OpTag
		switch {
		case i < blk.A && j < blk.B:
			tag = Replace
		case i < blk.A:
			tag = Delete
		case j < blk.B:
			tag = Insert
		default:
			tag = Equal
		}
		if tag != Equal {
			ops = append(ops, Opcode{Tag: tag, I1: i, I2: blk.A, J1: j, J2: blk.B})
		}
		i, j = blk.A+blk.Size, blk.B+blk.Size
		if blk.Size > 0 {
			ops = append(ops, Opcode{Tag: Equal, I1: blk.A, I2: i, J1: blk.B, J2: j})
		}
	}
	if ops == nil {
		ops = []Opcode{}
	}

	m.opcodes = ops
	return m.opcodes
}

// Ratio returns the similarity of the two sequences as 2*M/T, where M is the
// number of matched units and T the combined length. Two empty sequences are
// identical and score 1.
func (m *Matcher[T]) Ratio() float64 {
	total := len(m.a) + len(m.b)
	if total == 0 {
		return 1
	}
	matched := 0
	for _, blk := range m.MatchingBlocks() {
		matched += blk.Size
	}
	return 2 * float64(matched) / float64(total)
}

// Opcodes is shorthand for NewMatcher(a, b).Opcodes().
func Opcodes[T comparable](a, b []T) []Opcode {
	return NewMatcher(a, b).Opcodes()
}

// Ratio returns the character-level similarity of two strings. Characters
// are compared as runes.
func Ratio(a, b string) float64 {
	return NewMatcher([]rune(a), []rune(b)).Ratio()
}
