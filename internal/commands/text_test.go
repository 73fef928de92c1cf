package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

func seedLog(h *harness) {
	h.ok("ECHO Error: disk full > LOG.TXT")
	h.ok("ECHO all good >> LOG.TXT")
	h.ok("ECHO error: retry >> LOG.TXT")
}

func TestFind(t *testing.T) {
	h := newHarness(t)
	seedLog(h)

	assert.Equal(t, []string{"", "---------- LOG.TXT", "Error: disk full"}, h.ok(`FIND "Error" LOG.TXT`))
	assert.Equal(t, []string{"", "---------- LOG.TXT", "Error: disk full", "error: retry"}, h.ok(`FIND /I "error" LOG.TXT`))
	assert.Equal(t, []string{"", "---------- LOG.TXT", "[2]all good"}, h.ok(`FIND /V /N "rror" LOG.TXT`))
	assert.Equal(t, []string{"---------- LOG.TXT: 2"}, h.ok(`FIND /C /I "ERROR" log.txt`))

	h.fail(`FIND "x" MISSING.TXT`, dossim.KindNotFound)
	h.fail("FIND", dossim.KindInvalidArguments)
}

func TestFind_PipedInput(t *testing.T) {
	h := newHarness(t)
	seedLog(h)

	assert.Equal(t, []string{"error: retry"}, h.ok(`TYPE LOG.TXT | FIND "retry"`))
	assert.Equal(t, []string{"2"}, h.ok(`FIND /C /I "error" < LOG.TXT`))
	assert.Empty(t, h.ok(`FIND "x"`))
}

func TestPipeline_MalformedLineChangesNothing(t *testing.T) {
	h := newHarness(t)
	h.ok("MD LOGS")

	h.fail("MD X | BOGUS", dossim.KindUnknownCommand)
	h.fail("MD Y | DIR /Z", dossim.KindInvalidArguments)
	h.fail(`MD Z > "a?b"`, dossim.KindInvalidName)
	h.fail("MD W > LOGS", dossim.KindNotAFile)

	for _, name := range []string{"X", "Y", "Z", "W"} {
		assert.False(t, h.exists(name), name)
	}
}

func TestSortAndMore(t *testing.T) {
	h := newHarness(t)
	h.ok("ECHO banana > FRUIT.TXT")
	h.ok("ECHO Apple >> FRUIT.TXT")
	h.ok("ECHO cherry >> FRUIT.TXT")

	assert.Equal(t, []string{"Apple", "banana", "cherry"}, h.ok("SORT FRUIT.TXT"))
	assert.Equal(t, []string{"cherry", "banana", "Apple"}, h.ok("SORT /R FRUIT.TXT"))
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, h.ok("TYPE FRUIT.TXT | SORT"))
	assert.Equal(t, []string{"banana", "Apple", "cherry"}, h.ok("MORE FRUIT.TXT"))
	assert.Equal(t, []string{"Apple", "cherry"}, h.ok(`SORT < FRUIT.TXT | FIND /V "an" | MORE`))

	h.ok("SORT FRUIT.TXT > SORTED.TXT")
	assert.Equal(t, "Apple\nbanana\ncherry\n", h.file("SORTED.TXT"))
}

func TestComp(t *testing.T) {
	h := newHarness(t)
	h.ok("ECHO Hello World > A.TXT")
	h.ok("COPY A.TXT B.TXT")
	h.ok("ECHO hello   world > C.TXT")
	h.ok("ECHO Hello Wurld > D.TXT")

	assert.Equal(t, []string{"Comparing A.TXT and B.TXT...", "Files compare OK"}, h.ok("COMP A.TXT B.TXT"))
	assert.Equal(t, []string{"Comparing A.TXT and C.TXT...", "Files are different sizes."}, h.ok("COMP A.TXT C.TXT"))
	assert.Equal(t, []string{"Comparing A.TXT and C.TXT...", "Files compare OK"}, h.ok("COMP A.TXT C.TXT /W"))
	assert.Equal(t, []string{
		"Comparing A.TXT and D.TXT...",
		"Compare error at OFFSET 7",
		"file1 = 6F",
		"file2 = 75",
	}, h.ok("COMP A.TXT D.TXT"))

	h.fail("COMP A.TXT", dossim.KindInvalidArguments)
	h.fail("COMP A.TXT NONE.TXT", dossim.KindNotFound)
}
