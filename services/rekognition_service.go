package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionService detects coarse labels on meal photos. It only assists
// the vision flow with a dish name; nutrition estimation stays with the
// vision endpoint.
type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService(ctx context.Context) (*RekognitionService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		return nil, errors.New("AWS_REGION not set")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectDishLabels returns the top labels for a base64 image, accepting
// either a raw base64 string or a data URI.
func (r *RekognitionService) DetectDishLabels(ctx context.Context, imageBase64 string) ([]string, error) {
	raw := imageBase64
	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ",")
		if idx < 0 {
			return nil, errors.New("invalid data URI")
		}
		raw = raw[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name != nil {
			labels = append(labels, *l.Name)
		}
	}
	return labels, nil
}
