package rolandqd

/*------------------------------------------------------------------
 *
 * Purpose:	Console hex/binary pretty-printers. Peripheral: not part
 *		of the codec core, used only by the --hex CLI surface and
 *		--verbose 3 block dumps.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

// HexDump renders data as a comma-separated hex dump, one value per
// entry (e.g. "0x00,0x1a,0xff"), matching the original tool's printhex.
func HexDump(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return strings.Join(parts, ",")
}

// BinDump renders data as a concatenated string of binary digits, eight
// per byte, matching the original tool's printbin.
func BinDump(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		fmt.Fprintf(&sb, "%08b", b)
	}
	return sb.String()
}
