package otffeedback

import (
	"net/url"
	"time"

	"github.com/nsip/otf-feedback/internal/util"
	"github.com/pkg/errors"
)

type Option func(*OtfFeedbackService) error

//
// apply all supplied options to the service
// returns any error encountered while applying the options
//
func (srvc *OtfFeedbackService) setOptions(options ...Option) error {
	for _, opt := range options {
		if err := opt(srvc); err != nil {
			return err
		}
	}
	return nil
}

//
// the name of this service instance,
// if blank a short unique name will be generated
//
func Name(name string) Option {
	return func(s *OtfFeedbackService) error {
		if name != "" {
			s.serviceName = name
			return nil
		}
		s.serviceName = util.GenerateName()
		return nil
	}
}

//
// the unique id of this service instance,
// if blank a nuid will be generated
//
func ID(id string) Option {
	return func(s *OtfFeedbackService) error {
		if id != "" {
			s.serviceID = id
			return nil
		}
		s.serviceID = util.GenerateID()
		return nil
	}
}

//
// the host address the service listens on
//
func Host(hostName string) Option {
	return func(s *OtfFeedbackService) error {
		if hostName == "" {
			return errors.New("must have valid host name/address")
		}
		s.serviceHost = hostName
		return nil
	}
}

//
// the port the service listens on,
// 0 picks an available port
//
func Port(port int) Option {
	return func(s *OtfFeedbackService) error {
		if port < 0 || port > 65535 {
			return errors.Errorf("invalid port: %d", port)
		}
		if port != 0 {
			s.servicePort = port
			return nil
		}
		p, err := util.AvailablePort()
		if err != nil {
			return errors.Wrap(err, "cannot find a port for the service")
		}
		s.servicePort = p
		return nil
	}
}

//
// the endpoint of the external scoring service used by /review,
// blank disables /review
//
func ScorerURL(scorerURL string) Option {
	return func(s *OtfFeedbackService) error {
		if scorerURL == "" {
			s.scorerURL = ""
			return nil
		}
		u, err := url.Parse(scorerURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.Errorf("invalid scorer url: %q", scorerURL)
		}
		s.scorerURL = scorerURL
		return nil
	}
}

//
// the token sent as the Authorization header to the scoring service
//
func ScorerToken(token string) Option {
	return func(s *OtfFeedbackService) error {
		s.scorerToken = token
		return nil
	}
}

//
// how long a single scoring call may take
//
func ScorerTimeout(d time.Duration) Option {
	return func(s *OtfFeedbackService) error {
		if d < 0 {
			return errors.Errorf("invalid scorer timeout: %s", d)
		}
		s.scorerTimeout = d
		return nil
	}
}

//
// log at debug level rather than info
//
func Debug(debug bool) Option {
	return func(s *OtfFeedbackService) error {
		s.debug = debug
		return nil
	}
}
