package domain

import (
	"encoding/json"
	"strings"
)

// Student is one identity record from the student directory. Email and
// Password are the only fields the service interprets; everything else the
// directory returns is carried in Attributes untouched.
type Student struct {
	Email      string
	Password   string
	Attributes map[string]any
}

func (s *Student) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Student{}
	if raw == nil {
		return nil
	}

	if email, ok := raw["email"].(string); ok {
		s.Email = email
	}
	if password, ok := raw["password"].(string); ok {
		s.Password = password
	}
	delete(raw, "email")
	delete(raw, "password")

	if len(raw) > 0 {
		s.Attributes = raw
	}
	return nil
}

// MarshalJSON writes the pass-through attributes and the email. The password
// is never serialized.
func (s Student) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Attributes)+1)
	for k, v := range s.Attributes {
		if k == "password" {
			continue
		}
		out[k] = v
	}
	out["email"] = s.Email
	return json.Marshal(out)
}

// Attribute returns a pass-through attribute by name.
func (s Student) Attribute(name string) (any, bool) {
	v, ok := s.Attributes[name]
	return v, ok
}

// DirectorySnapshot is the full student listing returned by one directory
// fetch, in upstream order.
type DirectorySnapshot []Student

// Find returns the first student whose lower-cased email equals canonical.
// Duplicate emails are not reported; the earliest record wins. An empty
// canonical key matches a record with an empty email.
func (s DirectorySnapshot) Find(canonical string) (Student, bool) {
	for _, st := range s {
		if strings.ToLower(st.Email) == canonical {
			return st, true
		}
	}
	return Student{}, false
}

// Resolution is the outcome of resolving an identifier against the directory.
type Resolution struct {
	Found   bool
	Student Student
}
