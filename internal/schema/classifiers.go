package schema

// classifiers is a curated subset of the trove classifier list covering the
// entries the rules and completion care about.
var classifiers = []string{
	"Development Status :: 1 - Planning",
	"Development Status :: 2 - Pre-Alpha",
	"Development Status :: 3 - Alpha",
	"Development Status :: 4 - Beta",
	"Development Status :: 5 - Production/Stable",
	"Development Status :: 6 - Mature",
	"Development Status :: 7 - Inactive",
	"Environment :: Console",
	"Environment :: Web Environment",
	"Framework :: Django",
	"Framework :: FastAPI",
	"Framework :: Flask",
	"Framework :: Jupyter",
	"Framework :: Pytest",
	"Intended Audience :: Developers",
	"Intended Audience :: Education",
	"Intended Audience :: End Users/Desktop",
	"Intended Audience :: Information Technology",
	"Intended Audience :: Science/Research",
	"Intended Audience :: System Administrators",
	"Natural Language :: English",
	"Operating System :: MacOS",
	"Operating System :: Microsoft :: Windows",
	"Operating System :: OS Independent",
	"Operating System :: POSIX",
	"Operating System :: POSIX :: Linux",
	"Programming Language :: Python",
	"Programming Language :: Python :: 3",
	"Programming Language :: Python :: 3 :: Only",
	"Programming Language :: Python :: 3.9",
	"Programming Language :: Python :: 3.10",
	"Programming Language :: Python :: 3.11",
	"Programming Language :: Python :: 3.12",
	"Programming Language :: Python :: 3.13",
	"Programming Language :: Python :: Implementation :: CPython",
	"Programming Language :: Python :: Implementation :: PyPy",
	"Topic :: Internet :: WWW/HTTP",
	"Topic :: Scientific/Engineering",
	"Topic :: Software Development",
	"Topic :: Software Development :: Build Tools",
	"Topic :: Software Development :: Libraries",
	"Topic :: Software Development :: Libraries :: Python Modules",
	"Topic :: Software Development :: Quality Assurance",
	"Topic :: Software Development :: Testing",
	"Topic :: System :: Systems Administration",
	"Topic :: Text Processing",
	"Topic :: Utilities",
	"Typing :: Typed",
}

// licenseClassifiers are the `License ::` trove classifiers. PEP 639
// deprecates all of them in favor of the `license` expression field.
var licenseClassifiers = []string{
	"License :: OSI Approved",
	"License :: OSI Approved :: Apache Software License",
	"License :: OSI Approved :: BSD License",
	"License :: OSI Approved :: GNU Affero General Public License v3",
	"License :: OSI Approved :: GNU General Public License v2 (GPLv2)",
	"License :: OSI Approved :: GNU General Public License v3 (GPLv3)",
	"License :: OSI Approved :: GNU Lesser General Public License v3 (LGPLv3)",
	"License :: OSI Approved :: ISC License (ISCL)",
	"License :: OSI Approved :: MIT License",
	"License :: OSI Approved :: Mozilla Public License 2.0 (MPL 2.0)",
	"License :: OSI Approved :: Python Software Foundation License",
	"License :: OSI Approved :: The Unlicense (Unlicense)",
	"License :: OSI Approved :: zlib/libpng License",
	"License :: Other/Proprietary License",
	"License :: Public Domain",
}

// Classifiers returns every classifier in the curated set, license
// classifiers included.
func Classifiers() []string {
	out := make([]string, 0, len(classifiers)+len(licenseClassifiers))
	out = append(out, classifiers...)
	out = append(out, licenseClassifiers...)
	return out
}

// IsKnownClassifier reports whether text is in the curated classifier set.
func IsKnownClassifier(text string) bool {
	for _, c := range classifiers {
		if c == text {
			return true
		}
	}
	for _, c := range licenseClassifiers {
		if c == text {
			return true
		}
	}
	return false
}

// IsLicenseClassifier reports whether text is a deprecated `License ::`
// classifier.
func IsLicenseClassifier(text string) bool {
	const prefix = "License ::"
	return len(text) >= len(prefix) && text[:len(prefix)] == prefix
}
