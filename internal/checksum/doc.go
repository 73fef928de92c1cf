// Package checksum provides file content hashing with normalization support.
//
// Two digests are offered:
//
//   - Raw checksum: hash of the exact file content. Snapshots store it per
//     file and reject a file whose content no longer matches.
//   - Normalized checksum: hash after folding case and collapsing whitespace.
//     COMP /W uses it to compare text files while ignoring layout.
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(content)
//	loose := calculator.CalculateNormalized(content)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
