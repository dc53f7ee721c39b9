// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package lzma

import "fmt"

// Properties holds the three parameters an LZMA stream's properties byte
// encodes: the number of literal context bits, literal position bits, and
// position bits used to select pos_state contexts.
type Properties struct {
	LC, LP, PB uint32
}

// ParseProperties decodes a single LZMA properties byte, encoded as
// (pb*5+lp)*9+lc.
func ParseProperties(b byte) (Properties, error) {
	if b >= 9*5*5 {
		return Properties{}, fmt.Errorf("%w: properties byte %d out of range", ErrBadProperties, b)
	}
	v := uint32(b)
	lc := v % 9
	v /= 9
	lp := v % 5
	pb := v / 5
	return Properties{LC: lc, LP: lp, PB: pb}, nil
}

// Decoder is the LZMA packet decoder: it owns the adaptive probability
// tables, the rep-distance history, the 12-value state machine, and the
// dictionary packets are decoded into. One Decoder is driven across
// however many LZMA2 chunks share a dictionary; SetProperties and
// ResetState let the LZMA2 chunk driver apply the reset level each chunk's
// control byte specifies.
type Decoder struct {
	props Properties
	dict  *Dictionary

	state uint32
	rep   [4]uint32

	isMatch    [numStates][posStatesMax]uint16
	isRep      [numStates]uint16
	isRep0     [numStates]uint16
	isRep0Long [numStates][posStatesMax]uint16
	isRep1     [numStates]uint16
	isRep2     [numStates]uint16

	lit         *literalCoder
	lenCoder    lengthCoder
	repLenCoder lengthCoder
	distCoder   distanceDecoder
}

// NewDecoder returns a Decoder with a dictionary of the given window size.
// Properties default to lc=lp=pb=0 until SetProperties is called, matching
// the reference decoder's constructor, which initializes every probability
// table before any properties byte has been seen.
func NewDecoder(dictSize uint32) *Decoder {
	d := &Decoder{dict: NewDictionary(dictSize)}
	d.SetProperties(Properties{})
	d.ResetState()
	return d
}

// Dictionary returns the decoder's output dictionary.
func (d *Decoder) Dictionary() *Dictionary {
	return d.dict
}

// SetProperties installs new lc/lp/pb parameters. It must be called before
// any chunk decoded under them, and reallocates the literal coder's
// context table since its size depends on lc+lp.
func (d *Decoder) SetProperties(p Properties) {
	d.props = p
	d.lit = newLiteralCoder(p.LC, p.LP)
}

// ResetState clears the match state machine, rep-distance history, and all
// adaptive probabilities back to their initial values, without touching
// the dictionary.
func (d *Decoder) ResetState() {
	d.state = 0
	d.rep = [4]uint32{}
	for i := range d.isMatch {
		fillProbs(d.isMatch[i][:])
	}
	fillProbs(d.isRep[:])
	fillProbs(d.isRep0[:])
	for i := range d.isRep0Long {
		fillProbs(d.isRep0Long[i][:])
	}
	fillProbs(d.isRep1[:])
	fillProbs(d.isRep2[:])
	d.lit.Reset()
	d.lenCoder.Reset()
	d.repLenCoder.Reset()
	d.distCoder.Reset()
}

// Step decodes packets from rc, appending emitted bytes to the dictionary,
// until either remaining bytes have been produced or the dictionary has
// less than maxMatchLen bytes of headroom left to stage output into. It
// returns the number of bytes still left to produce, which is nonzero only
// when it stopped for lack of headroom; the caller must drain the
// dictionary and call Step again to resume. This keeps a single chunk's
// decode from ever staging more than one dictionary's worth of output
// before the caller has a chance to drain it.
//
// It fails with ErrCorruptStream if a packet would overrun remaining before
// completing, or if it decodes a distance reaching further back than the
// dictionary has ever held.
func (d *Decoder) Step(rc *RangeDecoder, remaining uint32) (uint32, error) {
	for remaining > 0 && d.dict.Available() >= maxMatchLen {
		n, err := d.decodePacket(rc)
		if err != nil {
			return remaining, err
		}
		if n > remaining {
			return remaining, fmt.Errorf("%w: lzma chunk overran its declared uncompressed size", ErrCorruptStream)
		}
		remaining -= n
	}
	return remaining, nil
}

func (d *Decoder) posState() uint32 {
	return d.dict.Pos() & ((1 << d.props.PB) - 1)
}

func (d *Decoder) decodePacket(rc *RangeDecoder) (uint32, error) {
	posState := d.posState()
	if rc.DecodeBit(&d.isMatch[d.state][posState]) == 0 {
		if err := d.decodeLiteralPacket(rc); err != nil {
			return 0, err
		}
		d.state = nextStateAfterLiteral(d.state)
		return 1, nil
	}

	if rc.DecodeBit(&d.isRep[d.state]) == 0 {
		// New match: rotate the rep-distance history and decode a fresh
		// length and distance.
		d.rep[3], d.rep[2], d.rep[1] = d.rep[2], d.rep[1], d.rep[0]
		length := d.lenCoder.Decode(rc, posState)
		d.rep[0] = d.distCoder.Decode(rc, length)
		if d.rep[0] == 0xffffffff {
			return 0, fmt.Errorf("%w: end-of-stream marker is not valid inside an lzma2 chunk", ErrCorruptStream)
		}
		d.state = nextStateAfterMatch(d.state)
		length += minMatchLen
		if err := d.copyMatch(length); err != nil {
			return 0, err
		}
		return length, nil
	}

	if rc.DecodeBit(&d.isRep0[d.state]) == 0 {
		if rc.DecodeBit(&d.isRep0Long[d.state][posState]) == 0 {
			// Short rep: a single byte from the current rep0 distance.
			d.state = nextStateAfterShortRep(d.state)
			if err := d.copyMatch(1); err != nil {
				return 0, err
			}
			return 1, nil
		}
	} else {
		var dist uint32
		if rc.DecodeBit(&d.isRep1[d.state]) == 0 {
			dist = d.rep[1]
		} else if rc.DecodeBit(&d.isRep2[d.state]) == 0 {
			dist = d.rep[2]
			d.rep[2] = d.rep[1]
		} else {
			dist = d.rep[3]
			d.rep[3] = d.rep[2]
			d.rep[2] = d.rep[1]
		}
		d.rep[1] = d.rep[0]
		d.rep[0] = dist
	}

	length := d.repLenCoder.Decode(rc, posState)
	d.state = nextStateAfterLongRep(d.state)
	length += minMatchLen
	if err := d.copyMatch(length); err != nil {
		return 0, err
	}
	return length, nil
}

func (d *Decoder) decodeLiteralPacket(rc *RangeDecoder) error {
	var prevByte byte
	if d.dict.Total() != 0 {
		prevByte = d.dict.ByteAt(1)
	}
	probs := &d.lit.probs[d.lit.state(d.dict.Pos(), prevByte)]

	var b byte
	if d.state >= 7 {
		if uint64(d.rep[0])+1 > d.dict.Total() {
			return fmt.Errorf("%w: matched literal references before the dictionary start", ErrCorruptStream)
		}
		matchByte := d.dict.ByteAt(d.rep[0] + 1)
		b = decodeLiteralMatched(rc, probs, matchByte)
	} else {
		b = decodeLiteralNormal(rc, probs)
	}
	return d.dict.PutByte(b)
}

func (d *Decoder) copyMatch(length uint32) error {
	dist := d.rep[0] + 1
	if uint64(dist) > d.dict.Total() {
		return fmt.Errorf("%w: match distance %d exceeds %d bytes decoded so far", ErrCorruptStream, dist, d.dict.Total())
	}
	if dist > d.dict.Capacity() {
		return fmt.Errorf("%w: match distance %d exceeds window size %d", ErrCorruptStream, dist, d.dict.Capacity())
	}
	for i := uint32(0); i < length; i++ {
		if err := d.dict.PutByte(d.dict.ByteAt(dist)); err != nil {
			return err
		}
	}
	return nil
}
