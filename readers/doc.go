// Package readers loads spectral files into tables.
//
// Supported formats are selected by file extension:
//
//   - .dpt: text columns, the first holding the axis and each further one a
//     spectrum
//   - .gsf: Gwyddion Simple Field images, one row per image line
//   - .nea: neaSPEC text exports, one row per measured channel
//   - .csv: one spectrum per line under a header of axis positions
//
// Files ending in .gz, .zst or .lz4 are decompressed on the fly, so
// "map.nea.zst" is read as a zstd-compressed NEA file.
package readers
