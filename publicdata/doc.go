// Package publicdata is the client façade for the public-data portal:
// one call applies the configured auth strategy, runs the transport under
// the retry policy, normalizes the terminal response into the canonical
// envelope, and validates rows into typed items.
//
// # Basic Usage
//
//	client, err := publicdata.New(publicdata.Config{
//	    BaseURL:  "https://apis.data.go.kr/B552735/kisedKstartupService01",
//	    Strategy: auth.StaticKey("serviceKey", os.Getenv("SERVICE_KEY")),
//	})
//
//	res := client.Call(ctx, "getAnnouncementInformation01", map[string]string{
//	    "page_no":     "1",
//	    "num_of_rows": "20",
//	})
//	if res.Success {
//	    for _, a := range publicdata.ItemsAs[schema.Announcement](res) {
//	        fmt.Println(a.Title)
//	    }
//	}
//
// # Concurrent batches
//
//	results, err := client.BatchCall(ctx, endpoints, params)
//
// Batch members run concurrently with per-slot failure isolation; the
// result slice always matches the input length.
package publicdata
