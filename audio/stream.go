package audio

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Stream plays a Synth through the default raylib audio device.
type Stream struct {
	stream rl.AudioStream
	synth  *Synth
}

// Open initializes the audio device and starts a mono float stream pulling
// samples from synth on the device thread.
func Open(synth *Synth, sampleRate, bufferFrames int) *Stream {
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		slog.Warn("audio device not ready, continuing muted")
		return nil
	}
	if bufferFrames > 0 {
		rl.SetAudioStreamBufferSizeDefault(int32(bufferFrames))
	}

	s := &Stream{
		stream: rl.LoadAudioStream(uint32(sampleRate), 32, 1),
		synth:  synth,
	}
	rl.SetAudioStreamCallback(s.stream, s.callback)
	rl.PlayAudioStream(s.stream)
	slog.Info("audio started", "sample_rate", sampleRate, "buffer_frames", bufferFrames)
	return s
}

func (s *Stream) callback(data []float32, frames int) {
	if frames > len(data) {
		frames = len(data)
	}
	s.synth.Fill(data[:frames])
}

// Close stops playback and releases the device. Safe on a nil Stream.
func (s *Stream) Close() {
	if s == nil {
		return
	}
	rl.StopAudioStream(s.stream)
	rl.UnloadAudioStream(s.stream)
	rl.CloseAudioDevice()
}
