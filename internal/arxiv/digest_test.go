package arxiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedDigest = `Date: Tue, 1 Apr 25 00:51:09 GMT
Subject: cs daily 2 new entries

cs daily Subj-class mailing

In today's cs daily Subj-class mailing:

------------------------------------------------------------------------------
\\
arXiv:2504.00001
Date: Tue, 1 Apr 2025 00:00:00 GMT   (12kb)

Title: Reinforcement Learning for
  Robotics
Authors: Jane Doe, John Smith
Categories: cs.LG cs.RO
Comments: 25 pages, 3 figures
\\
  We study reinforcement learning methods for robotic manipulation
tasks and report results on standard benchmarks.
\\ ( https://arxiv.org/abs/2504.00001 ,  12kb)
------------------------------------------------------------------------------
\\
arXiv:2504.00002
Date: Tue, 1 Apr 2025 00:00:00 GMT   (9kb)

Title: Spectral Methods in Graph Theory
Authors: Alice Example
Categories: math.CO
\\
  We revisit spectral bounds for graph colouring.
\\ ( https://arxiv.org/abs/2504.00002 ,  9kb)
------------------------------------------------------------------------------
%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%

To unsubscribe from these mailings, visit the arXiv website.
`

func TestParseDigestWellFormed(t *testing.T) {
	digest := ParseDigest(wellFormedDigest)

	require.Len(t, digest.Listings, 2)
	assert.Zero(t, digest.Dropped)
	assert.False(t, digest.Empty())

	first := digest.Listings[0]
	assert.Equal(t, "Reinforcement Learning for Robotics", first.Title)
	assert.Equal(t, "https://arxiv.org/abs/2504.00001", first.Link)
	assert.Equal(t,
		"We study reinforcement learning methods for robotic manipulation tasks and report results on standard benchmarks.",
		first.Abstract)

	second := digest.Listings[1]
	assert.Equal(t, "Spectral Methods in Graph Theory", second.Title)
	assert.Equal(t, "https://arxiv.org/abs/2504.00002", second.Link)
	assert.Equal(t, "We revisit spectral bounds for graph colouring.", second.Abstract)
}

func TestParseDigestIsIdempotent(t *testing.T) {
	first := ParseDigest(wellFormedDigest)
	second := ParseDigest(wellFormedDigest)

	assert.Equal(t, first, second)
}

func TestParseDigestDropsEntryWithoutTitle(t *testing.T) {
	body := `preamble text
------------------------------------------------------------------------------
\\
arXiv:2504.00003
Date: Tue, 1 Apr 2025 00:00:00 GMT   (4kb)

Authors: Nobody
\\
  An entry that never declares its title.
\\ ( https://arxiv.org/abs/2504.00003 ,  4kb)
------------------------------------------------------------------------------
\\
arXiv:2504.00004
Date: Tue, 1 Apr 2025 00:00:00 GMT   (5kb)

Title: A Perfectly Fine Sibling
Authors: Somebody
\\
  Still parsed even though the previous entry was malformed.
\\ ( https://arxiv.org/abs/2504.00004 ,  5kb)
------------------------------------------------------------------------------
%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%
`

	digest := ParseDigest(body)

	require.Len(t, digest.Listings, 1)
	assert.Equal(t, 1, digest.Dropped)
	assert.Equal(t, "A Perfectly Fine Sibling", digest.Listings[0].Title)
	assert.Equal(t, "https://arxiv.org/abs/2504.00004", digest.Listings[0].Link)
}

func TestParseDigestSynthesizesLinkFromIdentifier(t *testing.T) {
	body := `
------------------------------------------------------------------------------
\\
arXiv:2504.00005
Date: Tue, 1 Apr 2025 00:00:00 GMT   (7kb)

Title: An Entry Without a Link Token
Authors: Somebody
\\
  The footer of this entry was truncated by the mail gateway.
------------------------------------------------------------------------------
%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%
`

	digest := ParseDigest(body)

	require.Len(t, digest.Listings, 1)
	assert.Equal(t, "https://arxiv.org/abs/2504.00005", digest.Listings[0].Link)
}

func TestParseDigestDropsEntryWithoutAnyLink(t *testing.T) {
	body := `
------------------------------------------------------------------------------
\\
Title: No Identifier At All
Authors: Somebody
\\
  Neither a link token nor an arXiv header.
------------------------------------------------------------------------------
%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%
`

	digest := ParseDigest(body)

	assert.Empty(t, digest.Listings)
	assert.Equal(t, 1, digest.Dropped)
}

func TestParseDigestEmptyAbstract(t *testing.T) {
	body := `
------------------------------------------------------------------------------
\\
arXiv:2504.00006
Date: Tue, 1 Apr 2025 00:00:00 GMT   (3kb)

Title: Headers Only
Authors: Somebody
\\ ( https://arxiv.org/abs/2504.00006 ,  3kb)
------------------------------------------------------------------------------
%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%
`

	digest := ParseDigest(body)

	require.Len(t, digest.Listings, 1)
	assert.Equal(t, "Headers Only", digest.Listings[0].Title)
	assert.Equal(t, "", digest.Listings[0].Abstract)
}

func TestParseDigestNoListingSection(t *testing.T) {
	digest := ParseDigest("just a plain email\nwith no separators anywhere\n")

	assert.True(t, digest.Empty())
	assert.Empty(t, digest.Listings)
	assert.Zero(t, digest.Dropped)
}

func TestParseDigestIgnoresPreambleAndFooter(t *testing.T) {
	digest := ParseDigest(wellFormedDigest)

	for _, listing := range digest.Listings {
		assert.NotContains(t, listing.Abstract, "unsubscribe")
		assert.NotContains(t, listing.Abstract, "Subj-class mailing")
	}
}

func TestParseDigestSkipsLabelEchoesInAbstract(t *testing.T) {
	body := `
------------------------------------------------------------------------------
\\
arXiv:2504.00007
Date: Tue, 1 Apr 2025 00:00:00 GMT   (6kb)

Title: Label Lookalikes
Authors: Somebody
\\
  The abstract proper.
DOI: 10.0000/ignored.inside.abstract
  More abstract text.
\\ ( https://arxiv.org/abs/2504.00007 ,  6kb)
------------------------------------------------------------------------------
%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%--%%
`

	digest := ParseDigest(body)

	require.Len(t, digest.Listings, 1)
	assert.Equal(t, "The abstract proper. More abstract text.", digest.Listings[0].Abstract)
}
