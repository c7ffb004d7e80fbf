package cli

const (
	helpTopicPathStyle = "path-style"
	helpTopicSort      = "sort"
	shortHelpFlag      = "-h"
	longHelpFlag       = "--help"

	pathStyleHelpText = `Path styles (--path-style, -p)

Given the project
  /work/app/
    src/
      components/Button.js
      utils/helpers.js

  listall src -p rel          prints paths relative to the start directory:
    components/Button.js
    utils/helpers.js

  listall src -p rel-base     prefixes the basename of the start directory:
    src/components/Button.js
    src/utils/helpers.js

  listall src -p rel-base -b web   replaces the prefix with a custom label:
    web/components/Button.js
    web/utils/helpers.js

  listall src -p full         prints absolute paths.
  listall src -p files-only   prints bare file names.

The start directory is resolved to an absolute path first, so the output of
rel and rel-base does not depend on the current working directory. Paths on
a different drive than the start directory stay absolute unless --strict-rel
turns them into an error.
`

	sortHelpText = `Sort modes (--sort, -s)

  sequence     first number in the name, then the name (case-sensitive)
  isequence    first number in the name, then the name (case-insensitive)
  winsequence  lowercased name; underscores sort before letters
  name         name (case-sensitive)
  iname        name (case-insensitive, default)
  date         modification time, oldest first

Numbers compare by value, so file2 sorts before file10 under the sequence
modes. Summary output orders subdirectories with the same mode; date falls
back to name there.
`
)

var extendedHelpTopics = map[string]string{
	helpTopicPathStyle: pathStyleHelpText,
	helpTopicSort:      sortHelpText,
}

// lookupExtendedHelp returns the help topic requested as "-h <topic>" or
// "--help <topic>", if any.
func lookupExtendedHelp(arguments []string) (string, bool) {
	for index, argument := range arguments {
		if argument != shortHelpFlag && argument != longHelpFlag {
			continue
		}
		if index+1 >= len(arguments) {
			return "", false
		}
		topicText, found := extendedHelpTopics[arguments[index+1]]
		return topicText, found
	}
	return "", false
}
