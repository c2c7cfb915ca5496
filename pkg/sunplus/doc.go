// Package sunplus identifies and locates compressed speech records in
// firmware dumps of Sunplus / GeneralPlus speech-synthesis chips.
//
// Records come in two shapes:
//
//   - Standalone files carrying a self-describing header (magic 0xFF00FF00,
//     a "SUNPLUS SPEECH" or "GENERALPLUS SP" name and one of two variant
//     bodies selected by a discriminator byte).
//   - Entries inside a "GP_SPIFI" ROM container. The container holds groups
//     (speech, melody, image, ...) of files addressed through offset tables;
//     each file starts with a compact 8-byte header.
//
// All container offsets are relative to the container's own start, which
// need not be the start of the stream.
//
// Example usage:
//
//	f, err := os.Open(loc.Path)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	rec, err := sunplus.Detect(f, loc)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(rec.Codec(), rec.SampleRate())
//
//	// Stream is now positioned at rec.PayloadOffset.
package sunplus
