package review

// Validate inspects a decoded API payload and extracts the most recent
// status record. It is a pure function: no side effects, and it never
// panics: any surprise in the payload shape folds into a Malformed
// result.
//
// The API guarantees reverse-chronological order of the update list, so
// only the first element is examined; older records in the same batch
// are dropped.
func Validate(payload any) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Malformed("unexpected payload shape")
		}
	}()

	obj, ok := payload.(map[string]any)
	if !ok {
		return Malformed("not an object")
	}

	raw, ok := obj["homeworks"]
	if !ok {
		return Malformed("missing field: homeworks")
	}
	list, ok := raw.([]any)
	if !ok {
		return Malformed("missing field: homeworks")
	}
	if len(list) == 0 {
		return NoUpdate()
	}

	rec, bad := buildRecord(list[0])
	if bad != "" {
		return Malformed("bad record: " + bad)
	}
	return Fresh(rec)
}

// buildRecord maps one update-list element to a Record. The returned
// string names the offending field when the element is unusable.
// Only "id" and "status" are required; "lesson_name" is carried into
// the Label when the API sends it.
func buildRecord(elem any) (Record, string) {
	m, ok := elem.(map[string]any)
	if !ok {
		return Record{}, "element"
	}

	id, ok := stringField(m, "id")
	if !ok {
		return Record{}, "id"
	}
	var label string
	if v, present := m["lesson_name"]; present {
		s, ok := v.(string)
		if !ok {
			return Record{}, "lesson_name"
		}
		label = s
	}
	rawStatus, ok := stringField(m, "status")
	if !ok {
		return Record{}, "status"
	}
	status := Status(rawStatus)
	if !status.known() {
		return Record{}, "status"
	}

	return Record{ID: id, Status: status, Label: label}, ""
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
