// Package classpath lists and resolves class and source files across a
// classpath made of on-disk directories and jar or zip archives.
//
// A [FileManager] gives one enumeration API over both kinds of root:
//
//	fm := classpath.New(classpath.WithLogger(logger))
//	defer fm.Close()
//
//	files, err := fm.List(ctx, "lib/rt.jar", "java/lang", classpath.Kinds(classpath.KindClass), false)
//	if err != nil {
//	    return err
//	}
//	for _, f := range files {
//	    fmt.Println(f.Path())
//	}
//
// Archive roots are indexed once and shared through an [archive.Registry].
// Missing roots list as empty rather than failing, because a classpath
// routinely names entries that do not exist.
//
// # Descriptors
//
// The [desc] subpackage parses and builds JVM field and method descriptors.
// [FileManager.FileForClass] maps a class descriptor to its file:
//
//	d, _ := desc.Of("java.util.Map")
//	f, err := fm.FileForClass(root, d, classpath.KindClass) // java/util/Map.class
//
// # Index cache
//
// [WithIndexCache] persists archive indexes between runs, so reopening an
// unchanged jar skips its central directory scan:
//
//	c, err := disk.New(filepath.Join(os.TempDir(), "classpath-index"))
//	fm := classpath.New(classpath.WithIndexCache(c))
//
// # Case sensitivity
//
// On case-insensitive filesystems a lookup for "a/foo.class" would find a
// file stored as "a/Foo.class". [FileManager.FileForInput] re-checks the
// stored spelling and rejects such matches. Archive lookups are always
// exact.
package classpath
