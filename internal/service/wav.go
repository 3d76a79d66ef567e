package service

import (
	"encoding/binary"
	"fmt"
)

// ValidatePCMWAV checks that data carries a RIFF/WAVE header with PCM
// encoding, the precondition for handing audio to the transcriber. The
// capture client converts recordings to 16-bit PCM WAV before upload;
// anything else is a client error.
func ValidatePCMWAV(data []byte) error {
	if len(data) < 44 {
		return fmt.Errorf("%w: audio file too short to be a WAV recording", ErrMissingField)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return fmt.Errorf("%w: audio is not a RIFF/WAVE file", ErrMissingField)
	}
	if string(data[12:16]) != "fmt " {
		return fmt.Errorf("%w: WAV file missing fmt chunk", ErrMissingField)
	}
	// Audio format 1 is uncompressed PCM.
	if format := binary.LittleEndian.Uint16(data[20:22]); format != 1 {
		return fmt.Errorf("%w: WAV audio format %d is not PCM", ErrMissingField, format)
	}
	return nil
}
