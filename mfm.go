package rolandqd

/*------------------------------------------------------------------
 *
 * Purpose:	Modified Frequency Modulation encode/decode and sync
 *		word search, bit-accurate across arbitrary bit offsets.
 *
 * Description:	MFM pairs each logical bit into two cells (clock, data).
 *		A data bit of 1 is always encoded 0 1; a data bit of 0
 *		is encoded 1 0 if the previous data bit was 0, or 0 0
 *		if the previous data bit was 1. Decoding is lossy for
 *		clock-bit violations: any cell pair other than (0,1) is
 *		read back as a data 0, silently.
 *
 *------------------------------------------------------------------*/

// mfmSyncWord is the MFM encoding of seven 0x00 bytes followed by the
// delimiter 0xA5, post-mirroring.
var mfmSyncWord = []byte{
	0x94, 0x4A, 0x94, 0x4A, 0x94, 0x4A, 0x94, 0x4A,
	0x94, 0x4A, 0x94, 0x4A, 0x94, 0x4A, 0x44, 0x91,
}

// MfmEncode encodes a binary payload into MFM cells. Output is exactly
// 2*len(data) bytes.
func MfmEncode(data []byte) []byte {
	out := make([]byte, 2*len(data))
	bitBuf := NewBitBuffer(out)
	outputSize := len(out) * 8

	bitOffset := 0
	lastDataBit := 0

	for i := 0; i < len(data); i++ {
		for bitIdx := 7; bitIdx >= 0; bitIdx-- {
			dataBit := int((data[i] >> uint(bitIdx)) & 1)

			var clockBit, cellBit int
			if dataBit == 1 {
				clockBit, cellBit = 0, 1
			} else if lastDataBit != 0 {
				clockBit, cellBit = 0, 0
			} else {
				clockBit, cellBit = 1, 0
			}

			bitBuf.SetBit(bitOffset%outputSize, clockBit)
			bitOffset++
			bitBuf.SetBit(bitOffset%outputSize, cellBit)
			bitOffset++

			lastDataBit = dataBit
		}
	}

	return out
}

// MfmDecode decodes MFM cells back into a binary payload. It walks every
// cell pair of the input (the output grows as needed), returning exactly
// ceil(consumedBits/16) bytes. Clock violations are not reported: any
// cell pair other than (0,1) decodes to a data bit of 0.
func MfmDecode(data []byte) []byte {
	inputBits := len(data) * 8
	bitBuf := NewBitBuffer(data)

	out := make([]byte, 0, len(data)/2+1)
	var cur byte
	var curBits int

	bitOffset := 0
	for bitOffset < inputBits {
		c1 := bitBuf.GetBit(bitOffset)
		bitOffset++

		var c2 int
		if bitOffset < inputBits {
			c2 = bitBuf.GetBit(bitOffset)
		}
		bitOffset++

		dataBit := byte(0)
		if c1 == 0 && c2 == 1 {
			dataBit = 1
		}

		cur = (cur << 1) | dataBit
		curBits++
		if curBits == 8 {
			out = append(out, cur)
			cur, curBits = 0, 0
		}
	}

	if curBits > 0 {
		out = append(out, cur<<uint(8-curBits))
	}

	return out
}

// SearchBitsResult is the outcome of a sync-word search: Found reports
// whether the word was located, and Offset is the bit offset of the match
// (valid only when Found is true). Bit offset 0 is a legitimate match and
// must not be confused with "not found" (spec.md §9).
type SearchBitsResult struct {
	Found  bool
	Offset int
}

// SearchBits finds word at any bit offset within data, returning the
// first (lowest byte, then lowest bit-offset) match.
func SearchBits(data []byte, word []byte) SearchBitsResult {
	if len(data) < len(word) {
		return SearchBitsResult{Found: false}
	}

	wordLen := len(word)

	// Precompute 8 rotated copies of word, one per bit offset i in [0,7].
	// Copy i has an extra trailing byte holding the leftover bits.
	rotated := make([][]byte, 8)
	for i := 0; i < 8; i++ {
		copyI := make([]byte, wordLen+1)
		var prev byte
		for j := 0; j < wordLen; j++ {
			copyI[j] = prev | (word[j] >> uint(i))
			prev = (word[j] << uint(8-i)) & 0xff
		}
		copyI[wordLen] = prev
		rotated[i] = copyI
	}

	for s := 0; s+wordLen <= len(data); s++ {
		for i := 0; i < 8; i++ {
			j := 1
			for j < wordLen && rotated[i][j] == data[s+j] {
				j++
			}
			if j != wordLen {
				continue
			}
			firstMask := byte(0xff >> uint(i))
			if (rotated[i][0]^data[s])&firstMask != 0 {
				continue
			}
			lastMask := byte(0xff << uint(8-i))
			var tail byte
			if s+wordLen < len(data) {
				tail = data[s+wordLen]
			} else if lastMask != 0 {
				continue // the word's last i bits would fall past the end of data
			}
			if (rotated[i][wordLen]^tail)&lastMask != 0 {
				continue
			}
			return SearchBitsResult{Found: true, Offset: s<<3 + i}
		}
	}

	return SearchBitsResult{Found: false}
}

// MfmSync locates the MFM sync word block times in data, advancing past
// each match (and one further bit, to skip the sync word's final 1) for
// every match but the last. It returns the tail starting at the final
// sync position. If block <= 0, data is returned unchanged (pass-through,
// used by the decode(encode(x))==x round-trip test).
func MfmSync(data []byte, block int) ([]byte, SearchBitsResult) {
	if block <= 0 {
		return data, SearchBitsResult{Found: true, Offset: 0}
	}

	cur := data
	var last SearchBitsResult

	for i := 0; i < block; i++ {
		res := SearchBits(cur, mfmSyncWord)
		if !res.Found {
			return data, res
		}
		last = res

		cur = DropAndShift(cur, res.Offset)
		if i < block-1 {
			cur = DropAndShift(cur, 1)
		}
	}

	return cur, last
}
