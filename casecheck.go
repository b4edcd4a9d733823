package classpath

// caseMapCheck reports whether realPath, the stored spelling of a file,
// ends with name character for character. Separators are skipped on both
// sides, so "/tmp/src/a/Foo.class" matches "a/Foo.class" but not
// "a/foo.class". sep is the host separator used in realPath; name always
// uses '/'.
func caseMapCheck(realPath string, sep byte, name string) bool {
	i := len(realPath) - 1
	j := len(name) - 1
	for i >= 0 && j >= 0 {
		for i >= 0 && realPath[i] == sep {
			i--
		}
		for j >= 0 && name[j] == '/' {
			j--
		}
		if i >= 0 && j >= 0 {
			if realPath[i] != name[j] {
				return false
			}
			i--
			j--
		}
	}
	return j < 0
}
