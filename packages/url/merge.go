package url

// MergeFrom fills the parts u is missing from base. Fields already set on u
// are kept. Query parameters are unioned: for keys present on both sides, u's
// values come first and base's values are appended. A nil base is a no-op.
//
// Values are copied, so u and base share nothing afterwards. The merged query
// replaces u.Query rather than being written into it, so copies of u taken
// before the merge keep their parameters.
func (u *URL) MergeFrom(base *URL) {
	if base == nil {
		return
	}

	if u.Protocol == "" && base.Protocol != "" {
		u.Protocol = base.Protocol
	}
	if u.Hostname == "" && base.Hostname != "" {
		u.Hostname = base.Hostname
	}
	if u.Port == 0 && base.Port != 0 {
		u.Port = base.Port
	}
	if u.Pathname == "" && base.Pathname != "" {
		u.Pathname = base.Pathname
	}

	if base.Query.Len() > 0 {
		q := u.Query.Clone()
		for _, k := range base.Query.keyList() {
			vs, _ := base.Query.lookup(k)
			q.append(k, vs...)
		}
		u.Query = q
	}

	if u.Hash == "" && base.Hash != "" {
		u.Hash = base.Hash
	}
}

// MergeFromString parses base and merges it into u. If base cannot be parsed
// the error is returned and u is left untouched.
func (u *URL) MergeFromString(base string) error {
	if base == "" {
		return nil
	}
	b, err := Parse(base)
	if err != nil {
		return err
	}
	u.MergeFrom(b)
	return nil
}
