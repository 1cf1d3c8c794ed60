package stream

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/kinesisvideo"
	kvtypes "github.com/aws/aws-sdk-go-v2/service/kinesisvideo/types"
	"github.com/aws/aws-sdk-go-v2/service/kinesisvideoarchivedmedia"
	kvamtypes "github.com/aws/aws-sdk-go-v2/service/kinesisvideoarchivedmedia/types"
)

// Client issues HLS playback URLs for Kinesis Video streams. URLs are
// short-lived by design and re-issued per request, never cached.
type Client struct {
	cfg    aws.Config
	expiry int32
}

func NewClient(ctx context.Context, region, accessKey, secretKey string, expirySeconds int) (*Client, error) {
	loadOpts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(region),
	}
	if accessKey != "" {
		loadOpts = append(loadOpts,
			awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := awsConfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Client{cfg: cfg, expiry: int32(expirySeconds)}, nil
}

type HLSSession struct {
	URL          string `json:"hls_url"`
	DataEndpoint string `json:"data_endpoint"`
	StreamName   string `json:"stream_name"`
	Expires      int    `json:"expires"`
}

// HLSStreamingURL resolves the stream's data endpoint and asks for a live
// HLS session against it.
func (c *Client) HLSStreamingURL(ctx context.Context, streamARN string) (*HLSSession, error) {
	streamName, err := streamNameFromARN(streamARN)
	if err != nil {
		return nil, err
	}

	kv := kinesisvideo.NewFromConfig(c.cfg)
	ep, err := kv.GetDataEndpoint(ctx, &kinesisvideo.GetDataEndpointInput{
		StreamARN: aws.String(streamARN),
		APIName:   kvtypes.APINameGetHlsStreamingSessionUrl,
	})
	if err != nil {
		return nil, fmt.Errorf("get data endpoint: %w", err)
	}

	am := kinesisvideoarchivedmedia.NewFromConfig(c.cfg, func(o *kinesisvideoarchivedmedia.Options) {
		o.BaseEndpoint = ep.DataEndpoint
	})
	out, err := am.GetHLSStreamingSessionURL(ctx, &kinesisvideoarchivedmedia.GetHLSStreamingSessionURLInput{
		StreamARN:    aws.String(streamARN),
		PlaybackMode: kvamtypes.HLSPlaybackModeLive,
		HLSFragmentSelector: &kvamtypes.HLSFragmentSelector{
			FragmentSelectorType: kvamtypes.HLSFragmentSelectorTypeServerTimestamp,
		},
		Expires: aws.Int32(c.expiry),
	})
	if err != nil {
		return nil, fmt.Errorf("get hls session url: %w", err)
	}

	return &HLSSession{
		URL:          aws.ToString(out.HLSStreamingSessionURL),
		DataEndpoint: aws.ToString(ep.DataEndpoint),
		StreamName:   streamName,
		Expires:      int(c.expiry),
	}, nil
}

// streamNameFromARN extracts the stream name from
// arn:aws:kinesisvideo:<region>:<account>:stream/<name>/<creation-ts>.
func streamNameFromARN(arn string) (string, error) {
	parts := strings.Split(arn, "/")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid stream arn %q", arn)
	}
	return parts[1], nil
}
