package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "mercury.VolunteerService"

// Method names.
const (
	MethodRegister                 = "Register"
	MethodLogin                    = "Login"
	MethodVerify                   = "Verify"
	MethodResendVerification       = "ResendVerification"
	MethodRequestPasswordReset     = "RequestPasswordReset"
	MethodCheckResetCode           = "CheckResetCode"
	MethodResetPassword            = "ResetPassword"
	MethodListProjects             = "ListProjects"
	MethodGetProject               = "GetProject"
	MethodContactUs                = "ContactUs"
	MethodEmailStatus              = "EmailStatus"
	MethodUpdatePassword           = "UpdatePassword"
	MethodListNotifications        = "ListNotifications"
	MethodDismissNotification      = "DismissNotification"
	MethodGetProjectImageURL       = "GetProjectImageURL"
	MethodUpdateProject            = "UpdateProject"
	MethodGetProjectImageUploadURL = "GetProjectImageUploadURL"
	MethodListStoredEmails         = "ListStoredEmails"
	MethodUpdateStoredEmail        = "UpdateStoredEmail"
	MethodRemoveStoredEmail        = "RemoveStoredEmail"
	MethodFlushStoredEmails        = "FlushStoredEmails"
	MethodReverifyEmail            = "ReverifyEmail"
	MethodSendHealthCheck          = "SendHealthCheck"
)

// FullMethod returns the gRPC path of method, e.g.
// "/mercury.VolunteerService/Login".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// Access is the authorization level a method requires.
type Access int

const (
	AccessPublic Access = iota
	// AccessVolunteer requires a valid access token.
	AccessVolunteer
	// AccessAdmin requires a token of a volunteer with admin portal access.
	AccessAdmin
)

// MethodAccess maps each full method path to the access it requires.
var MethodAccess = map[string]Access{
	FullMethod(MethodRegister):                 AccessPublic,
	FullMethod(MethodLogin):                    AccessPublic,
	FullMethod(MethodVerify):                   AccessPublic,
	FullMethod(MethodResendVerification):       AccessPublic,
	FullMethod(MethodRequestPasswordReset):     AccessPublic,
	FullMethod(MethodCheckResetCode):           AccessPublic,
	FullMethod(MethodResetPassword):            AccessPublic,
	FullMethod(MethodListProjects):             AccessPublic,
	FullMethod(MethodGetProject):               AccessPublic,
	FullMethod(MethodContactUs):                AccessPublic,
	FullMethod(MethodEmailStatus):              AccessPublic,
	FullMethod(MethodUpdatePassword):           AccessVolunteer,
	FullMethod(MethodListNotifications):        AccessVolunteer,
	FullMethod(MethodDismissNotification):      AccessVolunteer,
	FullMethod(MethodGetProjectImageURL):       AccessVolunteer,
	FullMethod(MethodUpdateProject):            AccessAdmin,
	FullMethod(MethodGetProjectImageUploadURL): AccessAdmin,
	FullMethod(MethodListStoredEmails):         AccessAdmin,
	FullMethod(MethodUpdateStoredEmail):        AccessAdmin,
	FullMethod(MethodRemoveStoredEmail):        AccessAdmin,
	FullMethod(MethodFlushStoredEmails):        AccessAdmin,
	FullMethod(MethodReverifyEmail):            AccessAdmin,
	FullMethod(MethodSendHealthCheck):          AccessAdmin,
}

// VolunteerServiceServer is implemented by the server.
type VolunteerServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Verify(context.Context, *VerifyRequest) (*Empty, error)
	ResendVerification(context.Context, *UsernameRequest) (*Empty, error)
	RequestPasswordReset(context.Context, *PasswordResetRequest) (*Empty, error)
	CheckResetCode(context.Context, *UsernameRequest) (*Empty, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*Empty, error)
	ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error)
	GetProject(context.Context, *ProjectRequest) (*ProjectResponse, error)
	ContactUs(context.Context, *ContactUsRequest) (*Empty, error)
	EmailStatus(context.Context, *Empty) (*EmailStatusResponse, error)
	UpdatePassword(context.Context, *UpdatePasswordRequest) (*Empty, error)
	ListNotifications(context.Context, *Empty) (*NotificationsResponse, error)
	DismissNotification(context.Context, *DismissNotificationRequest) (*Empty, error)
	GetProjectImageURL(context.Context, *ImageURLRequest) (*ImageURLResponse, error)
	UpdateProject(context.Context, *UpdateProjectRequest) (*Empty, error)
	GetProjectImageUploadURL(context.Context, *ProjectRequest) (*ImageUploadURLResponse, error)
	ListStoredEmails(context.Context, *Empty) (*StoredEmailsResponse, error)
	UpdateStoredEmail(context.Context, *UpdateStoredEmailRequest) (*Empty, error)
	RemoveStoredEmail(context.Context, *StoredEmailRequest) (*Empty, error)
	FlushStoredEmails(context.Context, *Empty) (*FlushResponse, error)
	ReverifyEmail(context.Context, *Empty) (*Empty, error)
	SendHealthCheck(context.Context, *Empty) (*HealthCheckResponse, error)
}

func unary[Req, Resp any](method string, call func(VolunteerServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(VolunteerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(VolunteerServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VolunteerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, VolunteerServiceServer.Register),
		unary(MethodLogin, VolunteerServiceServer.Login),
		unary(MethodVerify, VolunteerServiceServer.Verify),
		unary(MethodResendVerification, VolunteerServiceServer.ResendVerification),
		unary(MethodRequestPasswordReset, VolunteerServiceServer.RequestPasswordReset),
		unary(MethodCheckResetCode, VolunteerServiceServer.CheckResetCode),
		unary(MethodResetPassword, VolunteerServiceServer.ResetPassword),
		unary(MethodListProjects, VolunteerServiceServer.ListProjects),
		unary(MethodGetProject, VolunteerServiceServer.GetProject),
		unary(MethodContactUs, VolunteerServiceServer.ContactUs),
		unary(MethodEmailStatus, VolunteerServiceServer.EmailStatus),
		unary(MethodUpdatePassword, VolunteerServiceServer.UpdatePassword),
		unary(MethodListNotifications, VolunteerServiceServer.ListNotifications),
		unary(MethodDismissNotification, VolunteerServiceServer.DismissNotification),
		unary(MethodGetProjectImageURL, VolunteerServiceServer.GetProjectImageURL),
		unary(MethodUpdateProject, VolunteerServiceServer.UpdateProject),
		unary(MethodGetProjectImageUploadURL, VolunteerServiceServer.GetProjectImageUploadURL),
		unary(MethodListStoredEmails, VolunteerServiceServer.ListStoredEmails),
		unary(MethodUpdateStoredEmail, VolunteerServiceServer.UpdateStoredEmail),
		unary(MethodRemoveStoredEmail, VolunteerServiceServer.RemoveStoredEmail),
		unary(MethodFlushStoredEmails, VolunteerServiceServer.FlushStoredEmails),
		unary(MethodReverifyEmail, VolunteerServiceServer.ReverifyEmail),
		unary(MethodSendHealthCheck, VolunteerServiceServer.SendHealthCheck),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mercury/volunteer_service",
}

func RegisterVolunteerServiceServer(s grpc.ServiceRegistrar, srv VolunteerServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// VolunteerServiceClient calls the service over a connection, always using
// the JSON codec.
type VolunteerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVolunteerServiceClient(cc grpc.ClientConnInterface) *VolunteerServiceClient {
	return &VolunteerServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VolunteerServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *VolunteerServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *VolunteerServiceClient) Verify(ctx context.Context, in *VerifyRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodVerify, in, opts)
}

func (c *VolunteerServiceClient) ResendVerification(ctx context.Context, in *UsernameRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodResendVerification, in, opts)
}

func (c *VolunteerServiceClient) RequestPasswordReset(ctx context.Context, in *PasswordResetRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodRequestPasswordReset, in, opts)
}

func (c *VolunteerServiceClient) CheckResetCode(ctx context.Context, in *UsernameRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodCheckResetCode, in, opts)
}

func (c *VolunteerServiceClient) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodResetPassword, in, opts)
}

func (c *VolunteerServiceClient) ListProjects(ctx context.Context, in *ListProjectsRequest, opts ...grpc.CallOption) (*ListProjectsResponse, error) {
	return invoke[ListProjectsResponse](ctx, c.cc, MethodListProjects, in, opts)
}

func (c *VolunteerServiceClient) GetProject(ctx context.Context, in *ProjectRequest, opts ...grpc.CallOption) (*ProjectResponse, error) {
	return invoke[ProjectResponse](ctx, c.cc, MethodGetProject, in, opts)
}

func (c *VolunteerServiceClient) ContactUs(ctx context.Context, in *ContactUsRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodContactUs, in, opts)
}

func (c *VolunteerServiceClient) EmailStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*EmailStatusResponse, error) {
	return invoke[EmailStatusResponse](ctx, c.cc, MethodEmailStatus, in, opts)
}

func (c *VolunteerServiceClient) UpdatePassword(ctx context.Context, in *UpdatePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodUpdatePassword, in, opts)
}

func (c *VolunteerServiceClient) ListNotifications(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*NotificationsResponse, error) {
	return invoke[NotificationsResponse](ctx, c.cc, MethodListNotifications, in, opts)
}

func (c *VolunteerServiceClient) DismissNotification(ctx context.Context, in *DismissNotificationRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDismissNotification, in, opts)
}

func (c *VolunteerServiceClient) GetProjectImageURL(ctx context.Context, in *ImageURLRequest, opts ...grpc.CallOption) (*ImageURLResponse, error) {
	return invoke[ImageURLResponse](ctx, c.cc, MethodGetProjectImageURL, in, opts)
}

func (c *VolunteerServiceClient) UpdateProject(ctx context.Context, in *UpdateProjectRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodUpdateProject, in, opts)
}

func (c *VolunteerServiceClient) GetProjectImageUploadURL(ctx context.Context, in *ProjectRequest, opts ...grpc.CallOption) (*ImageUploadURLResponse, error) {
	return invoke[ImageUploadURLResponse](ctx, c.cc, MethodGetProjectImageUploadURL, in, opts)
}

func (c *VolunteerServiceClient) ListStoredEmails(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StoredEmailsResponse, error) {
	return invoke[StoredEmailsResponse](ctx, c.cc, MethodListStoredEmails, in, opts)
}

func (c *VolunteerServiceClient) UpdateStoredEmail(ctx context.Context, in *UpdateStoredEmailRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodUpdateStoredEmail, in, opts)
}

func (c *VolunteerServiceClient) RemoveStoredEmail(ctx context.Context, in *StoredEmailRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodRemoveStoredEmail, in, opts)
}

func (c *VolunteerServiceClient) FlushStoredEmails(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*FlushResponse, error) {
	return invoke[FlushResponse](ctx, c.cc, MethodFlushStoredEmails, in, opts)
}

func (c *VolunteerServiceClient) ReverifyEmail(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodReverifyEmail, in, opts)
}

func (c *VolunteerServiceClient) SendHealthCheck(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	return invoke[HealthCheckResponse](ctx, c.cc, MethodSendHealthCheck, in, opts)
}
