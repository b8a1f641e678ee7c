package machine

// SetKeys replaces all key lines with a new report from the input collaborator.
// While the machine waits for a key, the lowest key that changed from released
// to pressed is stored in the wait register and execution resumes.
func (s *State) SetKeys(keys [KeyCount]bool) {
	if s.WaitingForKey {
		for i, pressed := range keys {
			if pressed && !s.Keys[i] {
				s.V[s.WaitRegister] = byte(i)
				s.WaitingForKey = false
				break
			}
		}
	}
	s.Keys = keys
}

// SetKey reports the state of a single key line.
func (s *State) SetKey(key uint8, pressed bool) {
	keys := s.Keys
	keys[key&0x0F] = pressed
	s.SetKeys(keys)
}
