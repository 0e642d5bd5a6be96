package processing

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/openai/openai-go/v3"
)

// Speech output parameters: the backend returns raw PCM at a fixed rate,
// mono, 16-bit little endian.
const (
	speechSampleRate = 24000
	speechChannels   = 1
	speechBitDepth   = 16
)

// Synthesize turns narration text and a voice identifier into a playable
// audio clip, returned as a WAV data URI.
func (g *Generator) Synthesize(ctx context.Context, text, voiceID string) (string, error) {
	if text == "" {
		return "", errors.New("no narration text to synthesize")
	}
	if voiceID == "" {
		return "", errors.New("no voice selected")
	}

	resp, err := g.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(g.speechModel),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(voiceID),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return "", fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer resp.Body.Close()

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read speech payload: %w", err)
	}
	if len(pcm) == 0 {
		return "", errors.New("speech synthesis returned no audio data")
	}

	wav := EncodeWAV(pcm, speechSampleRate, speechChannels, speechBitDepth)
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav), nil
}

// EncodeWAV wraps raw little-endian PCM samples in a RIFF/WAVE container so
// the clip is directly playable.
func EncodeWAV(pcm []byte, sampleRate, channels, bitDepth int) []byte {
	blockAlign := channels * bitDepth / 8
	byteRate := sampleRate * blockAlign

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitDepth))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}

// WAVDuration reads the byte rate and data length out of a WAV payload and
// returns the clip duration in seconds. Returns 0 for anything it cannot
// parse; callers fall back to a fixed delay.
func WAVDuration(wav []byte) float64 {
	if len(wav) < 44 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return 0
	}
	byteRate := binary.LittleEndian.Uint32(wav[28:32])
	dataLen := binary.LittleEndian.Uint32(wav[40:44])
	if byteRate == 0 {
		return 0
	}
	return float64(dataLen) / float64(byteRate)
}
