// README: CLI to encode a spec into partner links or decode a booking URL, for support debugging.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"farelink/internal/booking"
	"farelink/internal/config"
	"farelink/internal/modules/tripspec"
)

func main() {
	var (
		decode   = flag.String("decode", "", "booking URL to decode")
		from     = flag.String("from", "", "origin airport code")
		to       = flag.String("to", "", "destination airport code")
		depart   = flag.String("depart", "", "departure date YYYY-MM-DD")
		ret      = flag.String("return", "", "return date YYYY-MM-DD")
		kind     = flag.String("kind", "return", "trip kind: oneway|return|multicity")
		adults   = flag.Int("adults", 1, "adult passengers")
		children = flag.Int("children", 0, "child passengers")
		infants  = flag.Int("infants", 0, "infant passengers")
		format   = flag.String("format", "booking", "link format: booking|shareable|deeplink")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	codec := booking.NewCodec(booking.Config{
		BaseURL:        cfg.Partner.BaseURL,
		DeepLinkScheme: cfg.Partner.DeepLinkScheme,
		Currency:       cfg.Partner.Currency,
		Market:         cfg.Partner.Market,
		AffiliateID:    cfg.Partner.AffiliateID,
		UTMSource:      cfg.Partner.UTMSource,
		UTMMedium:      cfg.Partner.UTMMedium,
		UTMCampaign:    cfg.Partner.UTMCampaign,
	})

	if *decode != "" {
		partial := booking.ParseBookingURL(*decode)
		out, _ := json.MarshalIndent(partial, "", "  ")
		fmt.Println(string(out))
		if partial.IsEmpty() {
			fmt.Fprintln(os.Stderr, "warning: nothing extracted (malformed or unsupported URL)")
		}
		return
	}

	spec := &tripspec.TripSpecification{
		TripKind: tripspec.TripKind(*kind),
		Adults:   *adults,
		Children: *children,
		Infants:  *infants,
	}
	if *from != "" {
		spec.OriginCode = from
	}
	if *to != "" {
		spec.DestCode = to
	}
	if *depart != "" {
		spec.DepartureDate = depart
	}
	if *ret != "" {
		spec.ReturnDate = ret
	}

	url, err := codec.Encode(booking.Format(*format), spec)
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println(url)
}
