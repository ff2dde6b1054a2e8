// Package audio is the production codec backend for the assembler.
//
// Decoding and silence use gopxl/beep: each MP3 is decoded into an in-memory
// [beep.Buffer] at [SampleRate], resampling when the source rate differs. Encoding
// streams every segment into a temporary WAV file and hands it to an external ffmpeg
// process that writes the MP3. The destination is only touched by the final rename,
// so a failed run leaves no partial output.
package audio
