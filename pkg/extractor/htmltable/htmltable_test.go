package htmltable

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pricetrack-api/pkg/extractor"
	"pricetrack-api/pkg/quote"
)

const cryptoPage = `<!doctype html>
<html><body>
<div class="header"><table><tr><td>ignored</td></tr></table></div>
<div class="crypto-coins-table_container__x1">
 <div><div>
  <table>
   <thead><tr><th>#</th><th>Nombre</th></tr></thead>
   <tbody>
    <tr>
     <td>1</td>
     <td><img alt="logo"/><span>Bitcoin</span></td>
     <td><span>BTC</span><script>var x = 1;</script></td>
     <td>43.210,5</td>
    </tr>
    <tr>
     <td>2</td>
     <td><span>Ethereum</span></td>
     <td><span>ETH</span></td>
     <td>2.310,25</td>
    </tr>
    <tr>
     <td>3</td>
     <td><span>Tether</span></td>
     <td><span>USDT</span></td>
     <td>  </td>
    </tr>
   </tbody>
  </table>
 </div></div>
</div>
</body></html>`

func TestParseFlattensCells(t *testing.T) {
	rows, err := Parse(strings.NewReader(cryptoPage), "crypto-coins-table", 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, quote.RawRow{"1", "Bitcoin", "BTC", "43.210,5"}, rows[0])
	require.Equal(t, quote.RawRow{"3", "Tether", "USDT"}, rows[2])
}

func TestParseRowLimitAndDefaultTable(t *testing.T) {
	rows, err := Parse(strings.NewReader(cryptoPage), "crypto-coins-table", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = Parse(strings.NewReader(cryptoPage), "", 0)
	require.NoError(t, err)
	require.Equal(t, []quote.RawRow{{"ignored"}}, rows)
}

func TestParseMissingTable(t *testing.T) {
	_, err := Parse(strings.NewReader(`<html><body><p>nothing</p></body></html>`), "", 0)
	require.ErrorIs(t, err, ErrTableNotFound)

	_, err = Parse(strings.NewReader(cryptoPage), "does-not-exist", 0)
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestExtractOverHTTP(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(cryptoPage))
	}))
	defer srv.Close()

	ex, err := New(srv.URL, WithUserAgent("pricetrack-test"), WithContainerClass("crypto-coins-table"), WithRowLimit(2))
	require.NoError(t, err)
	rows, err := ex.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "pricetrack-test", gotUA)
}

func TestExtractNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	ex, err := New(srv.URL)
	require.NoError(t, err)
	_, err = ex.Extract(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 403")
}

func TestRegisteredBuilder(t *testing.T) {
	cfg := &extractor.Config{Type: "htmltable", URL: "https://example.invalid/crypto", TimeoutRaw: "3s", RowLimit: 5}
	require.NoError(t, cfg.Normalise())
	require.NoError(t, cfg.Validate())
	ex, err := extractor.Build(cfg)
	require.NoError(t, err)
	require.IsType(t, &Extractor{}, ex)

	_, err = New("  ")
	require.Error(t, err)
}
