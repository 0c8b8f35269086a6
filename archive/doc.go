// Package archive stores metric results as framed archive data records inside
// self-describing volumes, and reads them back.
//
// A volume is a section.VolumeHeader followed by the payload. The payload is a
// run of frames, each one an encoded data record followed by a trailer word
// that repeats the record length, so a damaged record can be detected from
// either end. The payload is compressed as a whole when the volume is closed
// and its xxHash64 is kept in the header.
//
// # Writing
//
//	w, err := archive.NewWriter(file, archive.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	for _, r := range results {
//	    if err := w.Append(r); err != nil {
//	        return err
//	    }
//	}
//	return w.Close()
//
// # Reading
//
//	r, err := archive.NewReader(data)
//	if err != nil {
//	    return err
//	}
//	for res, err := range r.All() {
//	    ...
//	}
//
// Writers and readers are not safe for concurrent use.
package archive
