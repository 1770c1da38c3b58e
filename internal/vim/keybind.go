package vim

// Key classes match a group of keys rather than one key name.
const (
	// ClassPrintable matches any rune key that inserts visible text.
	ClassPrintable = "<printable>"
)

// Action handles a key for the state S it is dispatched on.
type Action[S any] func(s S, k Key)

// KeyBinding represents a single key binding.
type KeyBinding[S any] struct {
	key         string
	description string
	action      Action[S]
}

// NewKeyBinding creates a new key binding.
func NewKeyBinding[S any](key, description string, action Action[S]) *KeyBinding[S] {
	return &KeyBinding[S]{
		key:         key,
		description: description,
		action:      action,
	}
}

// Key returns the key string.
func (kb *KeyBinding[S]) Key() string {
	return kb.key
}

// Description returns the description.
func (kb *KeyBinding[S]) Description() string {
	return kb.description
}

// Matches returns true if k is the key this binding names. Class bindings
// never match here; see KeyMap.Find.
func (kb *KeyBinding[S]) Matches(k Key) bool {
	return kb.key == k.String()
}

// Execute runs the action.
func (kb *KeyBinding[S]) Execute(s S, k Key) {
	if kb.action != nil {
		kb.action(s, k)
	}
}

func (kb *KeyBinding[S]) matchesClass(k Key) bool {
	switch kb.key {
	case ClassPrintable:
		return k.Printable()
	default:
		return false
	}
}

// KeyMap holds key bindings organized by mode. It is the dispatch table from
// (mode, key) to handler.
type KeyMap[S any] struct {
	bindings map[Mode][]*KeyBinding[S]
}

// NewKeyMap creates a new empty key map.
func NewKeyMap[S any]() *KeyMap[S] {
	return &KeyMap[S]{
		bindings: make(map[Mode][]*KeyBinding[S]),
	}
}

// Register adds a key binding for a mode.
func (km *KeyMap[S]) Register(mode Mode, key, description string, action Action[S]) {
	km.bindings[mode] = append(km.bindings[mode], NewKeyBinding(key, description, action))
}

// Bindings returns all bindings for a mode in registration order.
func (km *KeyMap[S]) Bindings(mode Mode) []*KeyBinding[S] {
	return km.bindings[mode]
}

// Find returns the binding for k in mode. A binding naming the key exactly
// wins over a class binding.
func (km *KeyMap[S]) Find(mode Mode, k Key) (*KeyBinding[S], bool) {
	for _, kb := range km.bindings[mode] {
		if kb.Matches(k) {
			return kb, true
		}
	}
	for _, kb := range km.bindings[mode] {
		if kb.matchesClass(k) {
			return kb, true
		}
	}
	return nil, false
}

// Dispatch runs the binding for k in mode on s. It returns false when no
// binding exists, in which case the key is ignored.
func (km *KeyMap[S]) Dispatch(mode Mode, s S, k Key) bool {
	kb, ok := km.Find(mode, k)
	if !ok {
		return false
	}
	kb.Execute(s, k)
	return true
}
