package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kotoba-backend/internal/domain"
)

// mockRepo records calls to verify pipeline behavior. Written datasets are
// kept so a second run observes a populated destination.
type mockRepo struct {
	mu sync.Mutex

	written     []*Dataset
	hasEntries  bool
	hasEntryErr error
	writeErr    error

	callLog []string
}

func (m *mockRepo) logCall(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = append(m.callLog, name)
}

func (m *mockRepo) HasEntries(_ context.Context) (bool, error) {
	m.logCall("HasEntries")
	if m.hasEntryErr != nil {
		return false, m.hasEntryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasEntries || len(m.written) > 0, nil
}

func (m *mockRepo) WriteDataset(_ context.Context, ds *Dataset) error {
	m.logCall("WriteDataset")
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	m.written = append(m.written, ds)
	m.mu.Unlock()
	return nil
}

// fakeSources serves in-memory source files.
type fakeSources struct {
	jmdict   string
	innocent string
	worldLex string

	openErr error
}

func (s *fakeSources) open(content string) (io.ReadCloser, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (s *fakeSources) OpenJMdict() (io.ReadCloser, error)         { return s.open(s.jmdict) }
func (s *fakeSources) OpenInnocentCorpus() (io.ReadCloser, error) { return s.open(s.innocent) }
func (s *fakeSources) OpenWorldLex() (io.ReadCloser, error)       { return s.open(s.worldLex) }

const testDTD = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE JMdict [
<!ENTITY n "noun (common) (futsuumeishi)">
<!ENTITY uk "word usually written using kana alone">
]>
`

func jmdictXML(entries ...string) string {
	return testDTD + "<JMdict>\n" + strings.Join(entries, "\n") + "\n</JMdict>\n"
}

// Entry 1000100 carries only spec2 but is by far the most frequent.
// Entry 1000200 carries news1 and no frequency data at all.
// Entries 1000300 and 1000050 have no priority and equal frequency.
var testSources = fakeSources{
	jmdict: jmdictXML(
		`<entry><ent_seq>1000100</ent_seq>
<k_ele><keb>頻繁</keb><ke_pri>spec2</ke_pri></k_ele>
<r_ele><reb>ひんぱん</reb></r_ele>
<sense><pos>&n;</pos><gloss>frequent</gloss></sense></entry>`,
		`<entry><ent_seq>1000200</ent_seq>
<k_ele><keb>新聞</keb><ke_pri>news1</ke_pri></k_ele>
<r_ele><reb>しんぶん</reb></r_ele>
<sense><pos>&n;</pos><gloss>newspaper</gloss></sense></entry>`,
		`<entry><ent_seq>1000300</ent_seq>
<r_ele><reb>いい</reb></r_ele>
<sense><misc>&uk;</misc><gloss>good</gloss></sense></entry>`,
		`<entry><ent_seq>1000050</ent_seq>
<r_ele><reb>いい</reb></r_ele>
<sense><gloss g_type="lit">fine</gloss></sense></entry>`,
	),
	innocent: "500000\t頻繁\n10\tいい\n",
	worldLex: "Word\tBlog_Freq\tBlog_Freq_pm\tBlog_CD\tBlog_CD_pc\tTwitter_Freq\tTwitter_Freq_pm\tTwitter_CD\tTwitter_CD_pc\tNews_Freq\tNews_Freq_pm\tNews_CD\tNews_CD_pc\n" +
		"ひんぱん\t1\t0.1\t1\t0.1\t2\t0.2\t2\t0.2\t3\t0.3\t3\t0.3\n",
}

func newTestPipeline(repo Repository, sources Sources, cfg Config) *Pipeline {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewPipeline(log, repo, sources, cfg)
}

func sequences(entries []domain.RankedEntry) []string {
	out := make([]string, len(entries))
	for i := range entries {
		out[i] = entries[i].Sequence
	}
	return out
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	repo := &mockRepo{}
	sources := testSources
	res, err := newTestPipeline(repo, &sources, Config{}).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, res.Skipped)
	assert.NotEqual(t, "", res.RunID.String())
	assert.Equal(t, []string{"HasEntries", "WriteDataset"}, repo.callLog)
	require.Len(t, repo.written, 1)

	ds := repo.written[0]
	assert.Same(t, res.Dataset, ds)

	// news1 outranks spec2 regardless of frequency; the two kana entries
	// tie on rank and text, so the lower sequence comes first.
	assert.Equal(t, []string{"1000200", "1000100", "1000050", "1000300"}, sequences(ds.Entries))
	for i := range ds.Entries {
		assert.Equal(t, int64(i+1), ds.Entries[i].Position)
	}

	assert.Equal(t, []domain.Tag{
		{Name: "n", Info: "noun (common) (futsuumeishi)"},
		{Name: "uk", Info: "word usually written using kana alone"},
	}, ds.Tags)

	var texts []string
	for _, row := range ds.Frequency {
		texts = append(texts, row.Text)
	}
	assert.Equal(t, []string{"頻繁", "ひんぱん", "いい"}, texts)
	require.NotNil(t, ds.Frequency[1].News)
	assert.Equal(t, int64(3), *ds.Frequency[1].News)
	assert.Nil(t, ds.Frequency[1].Innocent)

	for _, phase := range []string{PhaseLoad, PhaseRank, PhasePersist} {
		assert.Contains(t, res.Phases, phase)
	}
	assert.Equal(t, 4, res.Phases[PhasePersist].Entries)
}

func TestPipeline_Run_Idempotent(t *testing.T) {
	t.Parallel()

	repo := &mockRepo{}
	sources := testSources
	p := newTestPipeline(repo, &sources, Config{})

	first, err := p.Run(context.Background())
	require.NoError(t, err)
	require.False(t, first.Skipped)

	second, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Nil(t, second.Dataset)

	assert.Equal(t, []string{"HasEntries", "WriteDataset", "HasEntries"}, repo.callLog)
	require.Len(t, repo.written, 1, "second run must not write")
	assert.Equal(t, []string{"1000200", "1000100", "1000050", "1000300"}, sequences(repo.written[0].Entries))
}

func TestPipeline_Run_AlreadyPopulated(t *testing.T) {
	t.Parallel()

	repo := &mockRepo{hasEntries: true}
	sources := fakeSources{openErr: errors.New("sources must not be opened")}

	res, err := newTestPipeline(repo, &sources, Config{}).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, res.Phases)
	assert.Equal(t, []string{"HasEntries"}, repo.callLog)
}

func TestPipeline_Run_ImportedConcurrently(t *testing.T) {
	t.Parallel()

	repo := &mockRepo{writeErr: fmt.Errorf("in tx: %w", domain.ErrAlreadyImported)}
	sources := testSources

	res, err := newTestPipeline(repo, &sources, Config{}).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.NotContains(t, res.Phases, PhasePersist)
	assert.Equal(t, []string{"HasEntries", "WriteDataset"}, repo.callLog)
}

func TestPipeline_Run_DryRun(t *testing.T) {
	t.Parallel()

	sources := testSources
	res, err := newTestPipeline(nil, &sources, Config{DryRun: true}).Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, res.Dataset)
	assert.Len(t, res.Dataset.Entries, 4)
	assert.Contains(t, res.Phases, PhaseRank)
	assert.NotContains(t, res.Phases, PhasePersist)
}

func TestPipeline_Run_RequiresRepo(t *testing.T) {
	t.Parallel()

	sources := testSources
	_, err := newTestPipeline(nil, &sources, Config{}).Run(context.Background())
	assert.Error(t, err)
}

func TestPipeline_Run_Errors(t *testing.T) {
	t.Parallel()

	errDB := errors.New("connection reset")

	tests := []struct {
		name      string
		repo      *mockRepo
		sources   func() fakeSources
		wantIs    error
		wantCalls []string
	}{
		{
			name: "has entries fails",
			repo: &mockRepo{hasEntryErr: errDB},
			sources: func() fakeSources {
				return testSources
			},
			wantIs:    errDB,
			wantCalls: []string{"HasEntries"},
		},
		{
			name: "source missing",
			repo: &mockRepo{},
			sources: func() fakeSources {
				s := testSources
				s.openErr = os.ErrNotExist
				return s
			},
			wantIs:    os.ErrNotExist,
			wantCalls: []string{"HasEntries"},
		},
		{
			name: "source format violation",
			repo: &mockRepo{},
			sources: func() fakeSources {
				s := testSources
				s.jmdict = jmdictXML(`<entry><k_ele><keb>無</keb></k_ele></entry>`)
				return s
			},
			wantIs:    domain.ErrSourceFormat,
			wantCalls: []string{"HasEntries"},
		},
		{
			name: "malformed corpus",
			repo: &mockRepo{},
			sources: func() fakeSources {
				s := testSources
				s.innocent = "many\tいい\n"
				return s
			},
			wantCalls: []string{"HasEntries"},
		},
		{
			name: "write fails",
			repo: &mockRepo{writeErr: errDB},
			sources: func() fakeSources {
				return testSources
			},
			wantIs:    errDB,
			wantCalls: []string{"HasEntries", "WriteDataset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sources := tt.sources()
			res, err := newTestPipeline(tt.repo, &sources, Config{}).Run(context.Background())
			require.Error(t, err)
			assert.Nil(t, res)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Equal(t, tt.wantCalls, tt.repo.callLog)
			assert.Empty(t, tt.repo.written)
		})
	}
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &mockRepo{}
	sources := testSources
	_, err := newTestPipeline(repo, &sources, Config{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.written)
}

// endlessCorpus yields distinct Innocent corpus lines forever.
type endlessCorpus struct {
	n   int
	buf []byte
}

func (r *endlessCorpus) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		r.n++
		r.buf = fmt.Appendf(nil, "1\tword%d\n", r.n)
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

type endlessCorpusSources struct {
	fakeSources
}

func (s *endlessCorpusSources) OpenInnocentCorpus() (io.ReadCloser, error) {
	return io.NopCloser(&endlessCorpus{}), nil
}

func TestPipeline_Run_SourceErrorStopsCorpusReaders(t *testing.T) {
	t.Parallel()

	sources := &endlessCorpusSources{fakeSources: testSources}
	sources.jmdict = jmdictXML(`<entry><r_ele><reb>む</reb></r_ele></entry>`)

	repo := &mockRepo{}
	res, err := newTestPipeline(repo, sources, Config{}).Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrSourceFormat)
	assert.Empty(t, repo.written)
}
