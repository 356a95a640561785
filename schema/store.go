package schema

// Buckets in the raw key/value store.
const (
	EnvelopeBucket = "envelope-bucket"
)

var AllBuckets = []string{
	EnvelopeBucket,
}
