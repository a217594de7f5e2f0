package chanmodel

// Handles are stable integer indices into a container's internal arena.
// They replace the cyclic owning references (candle<->stroke<->segment<->
// pivot<->bsp) that a naive struct graph would otherwise need: a handle is
// cheap to compare and copy, and dereferencing it is an O(1) slice index
// local to the owning container.

type CandleHandle int

const NoCandle CandleHandle = -1

type StrokeHandle int

const NoStroke StrokeHandle = -1

type SegmentHandle int

const NoSegment SegmentHandle = -1

type PivotHandle int

const NoPivot PivotHandle = -1

type BSPointHandle int

const NoBSPoint BSPointHandle = -1
