package db

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/jsphweid/chordex/config"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/progression"
)

var ErrNotFound = errors.New("progression not found")

// Store keeps converted progressions in a DynamoDB table keyed by PK.
type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

type item struct {
	PK        string   `dynamodbav:"PK"`
	Sources   []string `dynamodbav:"Sources,stringset,omitempty"`
	Bars      int      `dynamodbav:"Bars"`
	Document  string   `dynamodbav:"Document"`
	CreatedAt int64    `dynamodbav:"CreatedAt"`
}

func New(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

func NewFromConfig(cfg config.DynamoDBConfig) (*Store, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}
	return New(dynamodb.New(sess), cfg.Table), nil
}

func (s *Store) Save(key string, sources []string, p *model.Progression) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("progression key is empty")
	}

	var buf bytes.Buffer
	if err := progression.Encode(&buf, p); err != nil {
		return err
	}

	av, err := dynamodbattribute.MarshalMap(item{
		PK:        key,
		Sources:   sources,
		Bars:      len(p.Bars),
		Document:  buf.String(),
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("could not marshal progression: %w", err)
	}

	_, err = s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

func (s *Store) Get(key string) (model.Document, error) {
	out, err := s.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(key)},
		},
	})
	if err != nil {
		return model.Document{}, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return model.Document{}, ErrNotFound
	}

	var it item
	if err := dynamodbattribute.UnmarshalMap(out.Item, &it); err != nil {
		return model.Document{}, fmt.Errorf("could not unmarshal progression: %w", err)
	}
	return progression.Decode(strings.NewReader(it.Document))
}
