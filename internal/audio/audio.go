// Package audio plays positional one-shots (door creaks, footsteps) with
// simple distance attenuation and stereo pan. It is demo-side plumbing:
// the movement core never touches it.
package audio

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Listener is the ear: the player's eye position and facing.
type Listener struct {
	Position rl.Vector3
	Forward  rl.Vector3
	Right    rl.Vector3
}

// Source is one playing world-positioned sound.
type Source struct {
	Position    rl.Vector3
	Sound       rl.Sound
	Volume      float32
	MaxDistance float32
	playing     bool
}

// Manager owns loaded sounds and updates their spatial parameters each
// frame. Single-threaded like the rest of the frame loop.
type Manager struct {
	listener Listener
	sources  map[uint64]*Source
	nextID   uint64
	enabled  bool
}

// NewManager opens the audio device. When the device cannot be opened
// (CI, headless) the manager stays disabled and every call is a no-op.
func NewManager() *Manager {
	rl.InitAudioDevice()
	return &Manager{
		sources: make(map[uint64]*Source),
		enabled: rl.IsAudioDeviceReady(),
	}
}

// Close unloads every sound and shuts the device down.
func (m *Manager) Close() {
	for _, src := range m.sources {
		rl.UnloadSound(src.Sound)
	}
	m.sources = nil
	if m.enabled {
		rl.CloseAudioDevice()
	}
}

// Load loads a sound file and returns its id. Invalid files return false.
func (m *Manager) Load(path string, maxDistance float32) (uint64, bool) {
	if !m.enabled {
		return 0, false
	}
	sound := rl.LoadSound(path)
	if !rl.IsSoundValid(sound) {
		return 0, false
	}
	m.nextID++
	m.sources[m.nextID] = &Source{
		Sound:       sound,
		Volume:      1.0,
		MaxDistance: maxDistance,
	}
	return m.nextID, true
}

// PlayAt starts a source at a world position.
func (m *Manager) PlayAt(id uint64, pos rl.Vector3) {
	src, ok := m.sources[id]
	if !ok {
		return
	}
	src.Position = pos
	src.playing = true
	rl.PlaySound(src.Sound)
}

// SetListener updates the ear from the committed camera state.
func (m *Manager) SetListener(pos, forward rl.Vector3) {
	m.listener.Position = pos

	fwdLen := rl.Vector3Length(forward)
	if fwdLen > 0.001 {
		m.listener.Forward = rl.Vector3Scale(forward, 1.0/fwdLen)
	} else {
		m.listener.Forward = rl.Vector3{X: 0, Y: 0, Z: -1}
	}

	right := rl.Vector3CrossProduct(rl.Vector3{X: 0, Y: 1, Z: 0}, m.listener.Forward)
	rightLen := rl.Vector3Length(right)
	if rightLen > 0.001 {
		m.listener.Right = rl.Vector3Scale(right, 1.0/rightLen)
	} else {
		m.listener.Right = rl.Vector3{X: 1, Y: 0, Z: 0}
	}
}

// Update recomputes volume and pan for every playing source.
func (m *Manager) Update() {
	for _, src := range m.sources {
		if !src.playing {
			continue
		}
		if !rl.IsSoundPlaying(src.Sound) {
			src.playing = false
			continue
		}

		toSource := rl.Vector3Subtract(src.Position, m.listener.Position)
		distance := rl.Vector3Length(toSource)

		// Linear falloff
		var volume float32
		if distance < src.MaxDistance {
			volume = src.Volume * (1.0 - distance/src.MaxDistance)
		}

		pan := float32(0.5)
		if distance > 0.001 {
			direction := rl.Vector3Scale(toSource, 1.0/distance)
			rightDot := rl.Vector3DotProduct(direction, m.listener.Right)
			pan = 0.5 + rightDot*0.5
			if pan < 0 {
				pan = 0
			} else if pan > 1 {
				pan = 1
			}

			// Sounds behind the listener are slightly quieter.
			frontDot := rl.Vector3DotProduct(direction, m.listener.Forward)
			if frontDot < 0 {
				volume *= 0.7 + 0.3*float32(math.Abs(float64(frontDot)))
			}
		}

		rl.SetSoundVolume(src.Sound, volume)
		rl.SetSoundPan(src.Sound, pan)
	}
}
