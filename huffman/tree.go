// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"container/heap"
	"sort"
)

// FrequencyTable maps each symbol to the number of times it occurs.
type FrequencyTable map[Symbol]uint64

// CountFrequencies scans input once.  Empty input yields an empty table.
func CountFrequencies(input []byte) FrequencyTable {
	freqs := make(FrequencyTable)
	for _, b := range input {
		freqs[Symbol(b)]++
	}
	return freqs
}

// Node is either a leaf holding one symbol, or an internal node holding exactly two children and the sum
// of their frequencies.
type Node struct {
	Symbol      Symbol
	Freq        uint64
	Left, Right *Node

	// seq orders nodes of equal frequency.  Leaves are numbered first in descending symbol order, then
	// internal nodes in the order they are made.
	seq int
}

func (node *Node) IsLeaf() bool {
	return node.Left == nil && node.Right == nil
}

// Depth returns the number of edges on the longest path from node to a leaf.
func (node *Node) Depth() int {
	if node == nil || node.IsLeaf() {
		return 0
	}
	left, right := node.Left.Depth(), node.Right.Depth()
	if left > right {
		return left + 1
	}
	return right + 1
}

// nodeQueue is a min-heap of nodes under the total order (Freq ascending, seq descending).
type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].Freq != q[j].Freq {
		return q[i].Freq < q[j].Freq
	}
	return q[i].seq > q[j].seq
}
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*Node)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// BuildTree merges the two lowest-priority nodes until one remains and returns it.  The first node taken
// becomes the left child.  Given the same table, BuildTree always returns the same shape.  It returns nil
// for an empty table.
func BuildTree(freqs FrequencyTable) *Node {
	if len(freqs) == 0 {
		return nil
	}

	symbols := make([]Symbol, 0, len(freqs))
	for sym := range freqs {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] > symbols[j] })

	q := make(nodeQueue, 0, len(symbols))
	seq := 0
	for _, sym := range symbols {
		q = append(q, &Node{Symbol: sym, Freq: freqs[sym], seq: seq})
		seq++
	}
	heap.Init(&q)

	for q.Len() > 1 {
		left := heap.Pop(&q).(*Node)
		right := heap.Pop(&q).(*Node)
		heap.Push(&q, &Node{
			Freq:  left.Freq + right.Freq,
			Left:  left,
			Right: right,
			seq:   seq,
		})
		seq++
	}

	root := heap.Pop(&q).(*Node)
	log.Debugf("built tree over %d symbols, depth %d", len(symbols), root.Depth())
	return root
}
