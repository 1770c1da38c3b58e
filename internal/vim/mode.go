package vim

// Mode represents the current vim editing mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// ModeManager handles vim mode state and transitions, and owns the command
// line typed in command mode.
type ModeManager struct {
	current       Mode
	commandBuffer []rune
}

// NewModeManager creates a new mode manager starting in normal mode.
func NewModeManager() *ModeManager {
	return &ModeManager{
		current: ModeNormal,
	}
}

// Current returns the current mode.
func (m *ModeManager) Current() Mode {
	return m.current
}

// SetMode changes the current mode. Entering or leaving command mode starts
// from an empty command line.
func (m *ModeManager) SetMode(mode Mode) {
	if m.current == ModeCommand || mode == ModeCommand {
		m.ClearCommandBuffer()
	}
	m.current = mode
}

// IsInsert returns true if in insert mode.
func (m *ModeManager) IsInsert() bool {
	return m.current == ModeInsert
}

// CommandBuffer returns the current command line, without the leading colon.
func (m *ModeManager) CommandBuffer() string {
	return string(m.commandBuffer)
}

// AppendToCommandBuffer adds a character to the command line.
func (m *ModeManager) AppendToCommandBuffer(r rune) {
	m.commandBuffer = append(m.commandBuffer, r)
}

// ClearCommandBuffer clears the command line.
func (m *ModeManager) ClearCommandBuffer() {
	m.commandBuffer = m.commandBuffer[:0]
}

// BackspaceCommandBuffer removes the last character from the command line.
// It returns false if the command line was already empty.
func (m *ModeManager) BackspaceCommandBuffer() bool {
	if len(m.commandBuffer) == 0 {
		return false
	}
	m.commandBuffer = m.commandBuffer[:len(m.commandBuffer)-1]
	return true
}
