// Package mad reads and writes MAD archives, a minimal DOS-era game
// container format.
//
// An archive is a header block immediately followed by a data region:
//   - Header block: one fixed 24-byte record per member, starting at
//     offset 0, with no count field and no magic number.
//   - Data region: each member's raw bytes at a 4-byte-aligned offset,
//     with zero padding in the gaps and no trailing padding.
//
// Because the format carries no record count, the header walk stops the
// moment the read position would enter the data region of a member seen
// so far; see [ReadIndex].
//
// # Quick Start
//
// Read a member from an archive:
//
//	a, err := mad.Open("GAME.MAD")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	content, err := a.ReadFile("TITLE.PIC")
//
// Build an archive from a directory:
//
//	err := mad.CreateFile(ctx, "GAME.MAD", "./assets")
//
// [Archive] implements fs.FS for standard library compatibility.
package mad
